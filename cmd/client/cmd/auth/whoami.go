package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
)

var whoamiJSON bool

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		name, err := types.RequireLogin(app)
		if err != nil {
			return err
		}

		profile, err := app.Profile(cmd.Context(), name)
		if err != nil {
			return err
		}

		if whoamiJSON {
			return types.PrintJSON(profile)
		}
		fmt.Printf("%s (id %d)\n", profile.Name, profile.ID)
		return nil
	},
}

func init() {
	WhoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "print as JSON")
}
