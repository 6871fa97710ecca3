package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in",
	Long: `Checks the credentials against the local database.

The user name is remembered until logout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Log in ===")
		fmt.Println()

		name, err := types.ReadLine("User name: ")
		if err != nil {
			return err
		}
		password, err := types.ReadPassword("Password: ")
		if err != nil {
			return err
		}

		if err := app.Login(cmd.Context(), name, password); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(color.GreenString("✅"), "Logged in as", name)
		return nil
	},
}
