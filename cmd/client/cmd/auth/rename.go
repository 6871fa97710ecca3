package auth

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
)

var RenameCmd = &cobra.Command{
	Use:   "rename <new-name>",
	Short: "Change the user name of the logged in user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		name, err := types.RequireLogin(app)
		if err != nil {
			return err
		}

		password, err := types.ReadPassword("Password: ")
		if err != nil {
			return err
		}

		if err := app.ChangeUsername(cmd.Context(), name, password, args[0]); err != nil {
			return err
		}

		fmt.Println(color.GreenString("✅"), "Renamed", name, "to", args[0])
		return nil
	},
}
