package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the logged in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if app.CurrentUser() == "" {
			fmt.Println("Not logged in")
			return nil
		}

		if err := app.Logout(); err != nil {
			return err
		}
		fmt.Println("✓ Logged out")
		return nil
	},
}
