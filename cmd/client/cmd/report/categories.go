package report

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
	"moneytracker/internal/domain/transaction"
)

var (
	categoriesDate     string
	categoriesMonth    string
	categoriesCategory string
	categoriesJSON     bool
)

var CategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show amounts per category",
	Long: `Groups transactions by category and sums their amounts, income and
expenses alike. Categories are sorted by amount, largest first.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if _, err := types.RequireLogin(app); err != nil {
			return err
		}

		filter, err := types.FilterFromFlags(categoriesDate, categoriesMonth, categoriesCategory)
		if err != nil {
			return err
		}

		summary, err := app.Summary(cmd.Context(), filter)
		if err != nil {
			return err
		}

		if categoriesJSON {
			return types.PrintJSON(summary)
		}

		fmt.Printf("Categories (%s)\n\n", filter)
		if len(summary.Categories) == 0 {
			fmt.Println("No transactions found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Category\tAmount\t\n")
		fmt.Fprintf(w, "---\t---\t\n")
		for _, c := range summary.Categories {
			fmt.Fprintf(w, "%s\t%s\t\n", c.Category, transaction.FormatAmount(c.Amount))
		}
		w.Flush()

		fmt.Println()
		printTotals(summary.Totals)
		return nil
	},
}

func init() {
	types.AddFilterFlags(CategoriesCmd, &categoriesDate, &categoriesMonth, &categoriesCategory)
	CategoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "print as JSON")
}
