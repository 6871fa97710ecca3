package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"moneytracker/cmd/client/cmd/auth"
	"moneytracker/cmd/client/cmd/report"
	"moneytracker/cmd/client/cmd/transaction"
	"moneytracker/cmd/client/cmd/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and the encryption key",
	Long: `Init prepares local storage:
	1. Creates or migrates the SQLite database
	2. Creates the encryption key used for stored passwords

Running it again is safe: an existing key is never replaced.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		status, err := app.Status()
		if err != nil {
			return err
		}

		fmt.Println(color.GreenString("✓"), "Database:", status.DBPath, "("+status.Driver+")")
		fmt.Println(color.GreenString("✓"), "Key file:", status.KeyPath)
		fmt.Println("  Key fingerprint:", status.KeyFingerprint[:16])
		if status.CurrentUser != "" {
			fmt.Println("  Logged in as:", status.CurrentUser)
		} else {
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("1. Create an account: moneytracker auth register")
			fmt.Println("2. Log in: moneytracker auth login")
			fmt.Println("3. Add a transaction: moneytracker transaction add")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.ChangePasswordCmd)
	auth.AuthCmd.AddCommand(auth.RenameCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	rootCmd.AddCommand(transaction.TransactionCmd)
	transaction.TransactionCmd.AddCommand(transaction.AddCmd)
	transaction.TransactionCmd.AddCommand(transaction.ListCmd)
	transaction.TransactionCmd.AddCommand(transaction.DeleteCmd)
	transaction.TransactionCmd.AddCommand(transaction.SeedCmd)

	rootCmd.AddCommand(report.ReportCmd)
	report.ReportCmd.AddCommand(report.TotalsCmd)
	report.ReportCmd.AddCommand(report.CategoriesCmd)
}
