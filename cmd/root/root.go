// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"finflow/statement-ingest/internal/config"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to subcommands
	// after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "statement-ingest",
		Short: "Ingest bank statement exports into categorized transactions.",
		Long: `statement-ingest parses a bank statement export (CSV, XLS or XLSX),
normalizes it through the bank's mapping rules and categorizes every
transaction with the Gemini model.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg

			level, err := logrus.ParseLevel(cfg.Log.Level)
			if err != nil {
				level = logrus.InfoLevel
			}
			Log.SetLevel(level)
			if cfg.Log.Format == "json" {
				Log.SetFormatter(&logrus.JSONFormatter{})
			} else {
				Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			}
			return nil
		},
	}
)
