// Package cmd contains all CLI commands for fanpulse.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"fan-pulse/config"
	"fan-pulse/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fanpulse",
	Short: "Football tweet sentiment service",
	Long: `fanpulse ingests football club tweet exports, classifies their
sentiment, and serves the dashboard aggregations over HTTP.

Example usage:
  fanpulse serve                     # Run the API server and classify loop
  fanpulse ingest tweets.csv         # Import a dataset export
  fanpulse classify                  # Drain the unclassified backlog`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.Init()

		var err error

		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
