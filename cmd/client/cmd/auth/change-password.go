package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
)

var ChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the password of the logged in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		name, err := types.RequireLogin(app)
		if err != nil {
			return err
		}

		fmt.Println("=== Change password ===")
		fmt.Println()

		oldPassword, err := types.ReadPassword("Current password: ")
		if err != nil {
			return err
		}
		newPassword, err := types.ReadPassword("New password: ")
		if err != nil {
			return err
		}
		confirm, err := types.ReadPassword("Repeat new password: ")
		if err != nil {
			return err
		}
		if newPassword != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err := app.ChangePassword(cmd.Context(), name, oldPassword, newPassword); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(color.GreenString("✅"), "Password changed")
		return nil
	},
}
