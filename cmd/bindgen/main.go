// Package main provides the bindgen CLI.
//
// bindgen reads bind.yaml, analyzes the listed packages and writes property
// registrations for their structs, so bindings resolve them without
// reflection. It also checks binding sheets for mistakes that can be found
// without a running tree.
//
// Usage:
//
//	bindgen gen [--manifest bind.yaml] [--check]
//	bindgen check [--converter name]... sheet.yaml...
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "bindgen",
	Short:         "Generate property registrations and check binding sheets",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("bindgen failed", slog.Any("error", err))
		os.Exit(1)
	}
}
