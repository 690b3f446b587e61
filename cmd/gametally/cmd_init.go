package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gametally/gametally/internal/scaffold"
	"github.com/gametally/gametally/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new analysis project",
		Long: `Initialize a new analysis project.

Creates an analysis.yaml spec file and a small games.csv sample dataset
to run it against.

Use --interactive to run a guided wizard that collects the analysis
settings instead of writing the defaults.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run guided analysis setup wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite files that already exist")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive, force bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// Create the root directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	specPath := filepath.Join(dir, "analysis.yaml")
	csvPath := filepath.Join(dir, "games.csv")

	if !force {
		for _, path := range []string{specPath, csvPath} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	specContent := scaffold.AnalysisYAML(defaultAnalysisName(dir), "games.csv")
	writeSample := true

	// Run interactive wizard if requested
	if interactive {
		settings, err := wizard.RunAnalysisWizard(cmd.InOrStdin(), cmd.OutOrStdout(), defaultAnalysisName(dir))
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}

		specContent, err = wizard.GenerateAnalysisYAML(settings)
		if err != nil {
			return fmt.Errorf("failed to generate analysis.yaml: %w", err)
		}

		// The sample dataset only makes sense when the wizard points at it.
		writeSample = settings.DatasetPath == "games.csv"
	}

	if err := os.WriteFile(specPath, []byte(specContent), 0o644); err != nil {
		return fmt.Errorf("failed to write analysis.yaml: %w", err)
	}
	written := []string{specPath}

	if writeSample {
		if err := os.WriteFile(csvPath, []byte(scaffold.SampleCSV()), 0o644); err != nil {
			return fmt.Errorf("failed to write sample dataset: %w", err)
		}
		written = append(written, csvPath)
	}

	// Print summary
	fmt.Fprintln(cmd.OutOrStdout(), "Initialized analysis project:") //nolint:errcheck
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", path) //nolint:errcheck
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nRun it with:\n  gametally run %s\n", specPath) //nolint:errcheck

	return nil
}

// defaultAnalysisName derives a starter analysis name from the target
// directory, falling back when init runs in place.
func defaultAnalysisName(dir string) string {
	base := filepath.Base(dir)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "game-analysis"
	}
	return base
}
