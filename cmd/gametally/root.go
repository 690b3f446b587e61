package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

// debugLogging is read by commands that build their own slog handler.
var debugLogging bool

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gametally",
		Short: "Gametally - CLI tool for analyzing game library exports",
		Long: `Gametally is a command-line tool for analyzing video game play statistics.

It ingests a flat CSV export of game records and produces play-count and
rating aggregates as text reports, markdown reports and chart images.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
