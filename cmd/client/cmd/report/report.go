package report

import (
	"github.com/spf13/cobra"
)

// ReportCmd is the parent of the aggregation commands.
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Totals and category breakdowns",
	Long: `Reports sum transactions for a day, a month, a category or everything.

At most one of --date, --month and --category may be given.`,
}
