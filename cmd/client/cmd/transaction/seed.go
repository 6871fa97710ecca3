package transaction

import (
	"fmt"

	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
)

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample transactions",
	Long:  `Inserts a fixed set of sample transactions for November 2024 in one batch.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if _, err := types.RequireLogin(app); err != nil {
			return err
		}

		n, err := app.SeedSample(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("✓ Inserted %d sample transactions\n", n)
		return nil
	},
}
