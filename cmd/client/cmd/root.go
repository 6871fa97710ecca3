package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"moneytracker/cmd/client/cmd/types"
	"moneytracker/internal/app/client"
	"moneytracker/internal/app/client/config"
	"moneytracker/internal/domain/errs"
	"moneytracker/internal/utils/logger"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
	log     *slog.Logger
	app     *client.App
)

var rootCmd = &cobra.Command{
	Use:   "moneytracker",
	Short: "Moneytracker - a personal income and expense tracker",
	Long: `Moneytracker keeps your income and expenses in a local SQLite database.

Passwords are stored encrypted with a key that lives next to the database.
Totals and category breakdowns can be computed for a day, a month or a category.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg := errs.Message(err)
		if errs.Kind(err) == nil {
			msg = err.Error()
		}
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), msg)
		if log != nil {
			log.Debug("command failed", "code", errs.Code(err), "error", err)
		}
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log = logger.New(cfg.Env, logger.WithLevel(level))

	app, err = client.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.moneytracker/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
