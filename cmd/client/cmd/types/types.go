// Package types holds what the command packages share: the context key for
// the app and small terminal helpers.
package types

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"moneytracker/internal/app/client"
	"moneytracker/internal/domain/errs"
	"moneytracker/internal/domain/transaction"
)

type contextKey string

// ClientAppKey stores the *client.App in the command context.
const ClientAppKey contextKey = "app"

var stdin = bufio.NewReader(os.Stdin)

// App returns the app set up by the root command.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return app, nil
}

// RequireLogin returns the current user or an invalid credentials error.
func RequireLogin(app *client.App) (string, error) {
	name := app.CurrentUser()
	if name == "" {
		return "", errs.Wrap(errs.ErrInvalidCredentials, "session", fmt.Errorf("log in first: moneytracker auth login"))
	}
	return name, nil
}

// ReadLine prints prompt and reads one trimmed line from stdin.
func ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword reads a password without echo when stdin is a terminal.
func ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ReadLine(prompt)
	}

	fmt.Print(prompt)
	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}

// FilterFromFlags builds a filter from at most one of date, month, category.
func FilterFromFlags(date, month, category string) (transaction.Filter, error) {
	set := 0
	for _, v := range []string{date, month, category} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return transaction.Filter{}, errs.Wrap(errs.ErrInvalidInput, "filter",
			fmt.Errorf("use only one of --date, --month, --category"))
	}

	switch {
	case date != "":
		return transaction.OnDate(transaction.Date(date)), nil
	case month != "":
		return transaction.InMonth(month), nil
	case category != "":
		return transaction.InCategory(category), nil
	}
	return transaction.All(), nil
}

// AddFilterFlags registers --date, --month and --category on cmd.
func AddFilterFlags(cmd *cobra.Command, date, month, category *string) {
	cmd.Flags().StringVar(date, "date", "", "only this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(month, "month", "", "only this month (YYYY-MM)")
	cmd.Flags().StringVar(category, "category", "", "only this category")
}

// PrintJSON writes v as indented JSON to stdout.
func PrintJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
