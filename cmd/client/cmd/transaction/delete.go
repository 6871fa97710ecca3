package transaction

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
	"moneytracker/internal/domain/errs"
)

var DeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if _, err := types.RequireLogin(app); err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errs.Wrap(errs.ErrInvalidInput, "delete transaction", fmt.Errorf("invalid id %q", args[0]))
		}

		if err := app.Remove(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("✓ Transaction %d deleted\n", id)
		return nil
	},
}
