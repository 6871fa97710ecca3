package transaction

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
	"moneytracker/internal/domain/transaction"
)

var (
	listDate     string
	listMonth    string
	listCategory string
	listFormat   string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Long: `Lists transactions, newest first.

At most one of --date, --month and --category may be given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if _, err := types.RequireLogin(app); err != nil {
			return err
		}

		filter, err := types.FilterFromFlags(listDate, listMonth, listCategory)
		if err != nil {
			return err
		}

		txs, err := app.List(cmd.Context(), filter)
		if err != nil {
			return err
		}

		switch listFormat {
		case "json":
			return types.PrintJSON(txs)
		case "table":
			return printTable(txs)
		case "csv":
			return writeCSV(os.Stdout, txs)
		default:
			return printSimple(txs)
		}
	},
}

func printSimple(txs []transaction.Transaction) error {
	if len(txs) == 0 {
		fmt.Println("No transactions found")
		return nil
	}

	fmt.Printf("Found: %d\n\n", len(txs))

	for _, tx := range txs {
		signed := tx.Signed()
		amount := color.GreenString("+" + transaction.FormatAmount(signed))
		if signed < 0 {
			amount = color.RedString(transaction.FormatAmount(signed))
		}

		fmt.Printf("#%d  %s  %s  %s\n", tx.ID, tx.Date, amount, tx.Category)
		if tx.Note != "" {
			fmt.Printf("     %s\n", tx.Note)
		}
	}

	return nil
}

func printTable(txs []transaction.Transaction) error {
	if len(txs) == 0 {
		fmt.Println("No transactions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tDate\tType\tAmount\tCategory\tNote\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t---\t\n")

	for _, tx := range txs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			tx.ID,
			tx.Date,
			tx.Type.DisplayName(),
			transaction.FormatAmount(tx.Amount),
			tx.Category,
			truncate(tx.Note, 30),
		)
	}

	w.Flush()
	fmt.Printf("\nTotal: %d\n", len(txs))
	return nil
}

func writeCSV(out io.Writer, txs []transaction.Transaction) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"ID", "Date", "Type", "Amount", "Category", "Note"}); err != nil {
		return err
	}

	for _, tx := range txs {
		if err := w.Write(csvRecord(tx)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func csvRecord(tx transaction.Transaction) []string {
	return []string{
		strconv.FormatInt(tx.ID, 10),
		tx.Date.String(),
		tx.Type.String(),
		transaction.FormatAmount(tx.Amount),
		tx.Category,
		tx.Note,
	}
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func init() {
	types.AddFilterFlags(ListCmd, &listDate, &listMonth, &listCategory)
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "output format (simple, table, json, csv)")
}
