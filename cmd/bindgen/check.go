package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"propbind/binding"
)

var converterNames []string

var checkCmd = &cobra.Command{
	Use:   "check sheet.yaml...",
	Short: "Check binding sheets",
	Long: `Check binding sheets for malformed paths, undefined modes, missing
element names and converters that are not known.

Sheets are checked without an anchor, so only problems visible in the sheet
itself are reported. Name the converters the application registers with
--converter.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVarP(&converterNames, "converter", "c", nil, "Converter name known to the application (repeatable)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	converters := binding.NewConverterRegistry()
	for _, name := range converterNames {
		if err := converters.Add(name, binding.ConverterFuncs{}); err != nil {
			return err
		}
	}

	m := binding.NewManager(binding.WithConverters(converters))

	failed := 0

	for _, path := range args {
		s, err := binding.LoadSheet(path)
		if err != nil {
			return err
		}

		diags := m.ValidateSheet(nil, s)
		for _, d := range diags.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, d)
		}

		slog.Debug("checked sheet",
			slog.String("sheet", path),
			slog.Int("bindings", len(s.Bindings)),
			slog.Int("errors", len(diags.Errors)))

		failed += len(diags.Errors)
	}

	if failed > 0 {
		return fmt.Errorf("%d problem(s) found", failed)
	}

	return nil
}
