package report

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
	"moneytracker/internal/domain/report"
	"moneytracker/internal/domain/transaction"
)

var (
	totalsDate     string
	totalsMonth    string
	totalsCategory string
	totalsJSON     bool
)

var TotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show income, expenses and balance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if _, err := types.RequireLogin(app); err != nil {
			return err
		}

		filter, err := types.FilterFromFlags(totalsDate, totalsMonth, totalsCategory)
		if err != nil {
			return err
		}

		totals, err := app.Totals(cmd.Context(), filter)
		if err != nil {
			return err
		}

		if totalsJSON {
			return types.PrintJSON(struct {
				report.AggregateResult
				Balance int64 `json:"balance"`
			}{totals, totals.Balance()})
		}

		fmt.Printf("Totals (%s)\n\n", filter)
		printTotals(totals)
		return nil
	},
}

func printTotals(totals report.AggregateResult) {
	fmt.Println("  Income: ", color.GreenString(transaction.FormatAmount(totals.TotalIncome)))
	fmt.Println("  Outcome:", color.RedString(transaction.FormatAmount(totals.TotalOutcome)))

	balance := transaction.FormatAmount(totals.Balance())
	if totals.Balance() < 0 {
		balance = color.RedString(balance)
	}
	fmt.Println("  Balance:", balance)
}

func init() {
	types.AddFilterFlags(TotalsCmd, &totalsDate, &totalsMonth, &totalsCategory)
	TotalsCmd.Flags().BoolVar(&totalsJSON, "json", false, "print as JSON")
}
