package transaction

import (
	"github.com/spf13/cobra"
)

// TransactionCmd is the parent of every income and expense command.
var TransactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"tx"},
	Short:   "Manage income and expenses",
	Long:    `Add, list and delete transactions.`,
}
