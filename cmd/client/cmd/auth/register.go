package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Creates an account in the local database.

The password is encrypted with the local key before it is stored.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Registration ===")
		fmt.Println()

		name, err := types.ReadLine("User name: ")
		if err != nil {
			return err
		}

		password, err := types.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := types.ReadPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		if err := app.Register(cmd.Context(), name, password); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(color.GreenString("✅"), "Account created:", name)
		fmt.Println("Log in with: moneytracker auth login")
		return nil
	},
}
