package transaction

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/types"
	"moneytracker/internal/domain/errs"
	"moneytracker/internal/domain/transaction"
)

var (
	addType     string
	addDate     string
	addAmount   string
	addCategory string
	addNote     string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction",
	Long: `Adds an income or an expense.

Missing values are asked for interactively. The date defaults to today.

Examples:
  moneytracker tx add --type income --amount 1500 --category Salary
  moneytracker tx add -t out -a 12,50 -c Food -n "lunch"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if _, err := types.RequireLogin(app); err != nil {
			return err
		}

		if addType == "" {
			if addType, err = types.ReadLine("Type (income/outcome): "); err != nil {
				return err
			}
		}
		txType, err := transaction.ParseType(addType)
		if err != nil {
			return errs.Wrap(errs.ErrInvalidInput, "add transaction", err)
		}

		date := transaction.Today()
		if addDate != "" {
			if date, err = transaction.ParseDate(addDate); err != nil {
				return errs.Wrap(errs.ErrInvalidInput, "add transaction", err)
			}
		}

		if addAmount == "" {
			if addAmount, err = types.ReadLine("Amount: "); err != nil {
				return err
			}
		}
		amount, err := transaction.ParseAmount(addAmount)
		if err != nil {
			return errs.Wrap(errs.ErrInvalidInput, "add transaction", err)
		}

		if addCategory == "" {
			if addCategory, err = types.ReadLine("Category: "); err != nil {
				return err
			}
		}

		id, err := app.Add(cmd.Context(), transaction.Transaction{
			Type:     txType,
			Date:     date,
			Amount:   amount,
			Category: addCategory,
			Note:     addNote,
		})
		if err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓"), "Added", txType.DisplayName(), transaction.FormatAmount(amount),
			"to", addCategory, "on", date, fmt.Sprintf("(id %d)", id))

		totals, err := app.Totals(cmd.Context(), transaction.InMonth(date.Month()))
		if err != nil {
			return err
		}
		fmt.Printf("  Balance for %s: %s\n", date.Month(), transaction.FormatAmount(totals.Balance()))
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addType, "type", "t", "", "income or outcome")
	AddCmd.Flags().StringVarP(&addDate, "date", "d", "", "date (YYYY-MM-DD), today by default")
	AddCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "amount, e.g. 12.50")
	AddCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category")
	AddCmd.Flags().StringVarP(&addNote, "note", "n", "", "optional note")
}
