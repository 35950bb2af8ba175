package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"propbind/internal/analyze"
	"propbind/internal/gen"
	"propbind/internal/manifest"
)

var (
	manifestPath string
	checkOnly    bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate property registrations for the packages in a manifest",
	Long: `Generate property registrations for the packages listed in bind.yaml.

Every exported struct of those packages gets an init function registering
its fields and getter methods with propbind/access. With --check nothing is
written and the command fails when a generated file is out of date.`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVarP(&manifestPath, "manifest", "m", manifest.DefaultFilename, "Path to the manifest")
	genCmd.Flags().BoolVar(&checkOnly, "check", false, "Fail if generated files are out of date instead of writing them")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	res, err := m.Resolve()
	if err != nil {
		return err
	}

	slog.Debug("loading packages",
		slog.String("module", res.ModulePath),
		slog.String("patterns", strings.Join(res.Patterns, " ")))

	graph, err := analyze.NewAnalyzer(analyze.WithDir(res.Root)).LoadPackages(res.Patterns...)
	if err != nil {
		return err
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{Filename: m.Output, WriteDebug: true})

	files, err := generator.Generate(graph, m.Include)
	if err != nil {
		return err
	}

	if checkOnly {
		stale, err := gen.Stale(files)
		if err != nil {
			return err
		}

		if len(stale) > 0 {
			return fmt.Errorf("out of date: %s", strings.Join(stale, ", "))
		}

		slog.Info("generated files are up to date", slog.Int("files", len(files)))

		return nil
	}

	if err := gen.WriteFiles(files); err != nil {
		return err
	}

	for _, f := range files {
		slog.Info("generated", slog.String("file", filepath.Join(f.Dir, f.Filename)))
	}

	return nil
}
