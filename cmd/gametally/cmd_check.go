package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/gametally/gametally/internal/config"
	"github.com/gametally/gametally/internal/dataset"
	"github.com/gametally/gametally/internal/models"
	"github.com/gametally/gametally/internal/spinner"
	"github.com/gametally/gametally/internal/validation"
)

// datasetProbeTimeout bounds the check's dataset read. Blob datasets go
// over the network; a check should never hang on them.
const datasetProbeTimeout = 30 * time.Second

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [analysis.yaml]",
		Short: "Check if an analysis is ready to run",
		Long: `Check if an analysis is ready to run, without running it.

Performs the following checks:
  1. Schema  - validates the spec file against the analysis schema
  2. Spec    - loads the spec and applies semantic validation
  3. Dataset - reads the dataset and verifies the required columns

Exits non-zero when any check finds a problem, so it can gate CI.

With no argument, analysis.yaml in the current directory is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "text", "Output format: text | json")
	return cmd
}

// --- JSON output structs ---

type checkJSONReport struct {
	Timestamp string      `json:"timestamp"`
	SpecPath  string      `json:"specPath"`
	SpecName  string      `json:"specName,omitempty"`
	Ready     bool        `json:"ready"`
	Schema    schemaJSON  `json:"schema"`
	Spec      specJSON    `json:"spec"`
	Dataset   datasetJSON `json:"dataset"`
}

type schemaJSON struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type specJSON struct {
	Loaded    bool   `json:"loaded"`
	Error     string `json:"error,omitempty"`
	Artifacts int    `json:"artifacts"`
}

type datasetJSON struct {
	Path           string   `json:"path"`
	Records        int      `json:"records"`
	Columns        int      `json:"columns"`
	MissingColumns []string `json:"missingColumns,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// checkReport collects everything the check learns about a spec and its
// dataset before any of it is formatted.
type checkReport struct {
	specPath    string
	specName    string
	schemaErrs  []string
	spec        *models.AnalysisSpec // nil when the semantic load failed
	loadErr     string
	artifacts   int
	datasetPath string
	datasetErr  string
	records     int
	columns     int
	missingCols []string
}

func (r *checkReport) ready() bool {
	return len(r.schemaErrs) == 0 &&
		r.loadErr == "" &&
		r.datasetErr == "" &&
		len(r.missingCols) == 0
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format %q: expected text or json", format)
	}

	specPath := "analysis.yaml"
	if len(args) > 0 {
		specPath = args[0]
	}

	report, err := checkAnalysis(specPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if format == "json" {
		if err := outputCheckJSON(cmd, report); err != nil {
			return err
		}
	} else {
		displayCheckReport(cmd.OutOrStdout(), report)
	}

	if !report.ready() {
		return fmt.Errorf("%s is not ready to run", specPath)
	}
	return nil
}

func checkAnalysis(specPath string, errOut io.Writer) (*checkReport, error) {
	report := &checkReport{specPath: specPath}

	if _, err := os.Stat(specPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("no analysis spec found at %s", specPath)
	} else if err != nil {
		return nil, fmt.Errorf("checking spec file: %w", err)
	}

	// 1. Schema validation
	findings, err := validation.ValidateAnalysisFile(specPath)
	if err != nil {
		return nil, err
	}
	report.schemaErrs = findings

	// 2. Semantic load
	spec, err := models.LoadAnalysisSpec(specPath)
	if err != nil {
		report.loadErr = err.Error()
		return report, nil
	}
	report.spec = spec
	report.specName = spec.Name
	report.artifacts = len(spec.Artifacts)

	// 3. Dataset probe. Remote datasets take a moment to download.
	specDir := filepath.Dir(specPath)
	cfg := config.NewRunConfig(spec, config.WithSpecDir(specDir))
	report.datasetPath = cfg.DatasetPath()
	spinner.While(errOut, "Probing dataset...", func() {
		probeDataset(report)
	})

	return report, nil
}

// probeDataset reads the dataset and records its shape. A missing or
// malformed dataset is a finding on the report, not a hard error.
func probeDataset(report *checkReport) {
	source, err := dataset.Open(report.datasetPath)
	if err != nil {
		report.datasetErr = err.Error()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), datasetProbeTimeout)
	defer cancel()

	table, err := source.Load(ctx)
	if err != nil {
		report.datasetErr = err.Error()
		return
	}

	report.records = len(table.Rows)
	report.columns = len(table.Columns)
	report.missingCols = table.MissingColumns()
}

func displayCheckReport(w io.Writer, report *checkReport) {
	fmt.Fprintf(w, "%s\n", strings.Repeat("═", 55))   //nolint:errcheck
	fmt.Fprintf(w, " ANALYSIS CHECK\n")               //nolint:errcheck
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("═", 55)) //nolint:errcheck

	name := report.specName
	if name == "" {
		name = "unnamed"
	}
	fmt.Fprintf(w, "Spec: %s (%s)\n\n", report.specPath, name) //nolint:errcheck

	if len(report.schemaErrs) == 0 {
		fmt.Fprintf(w, "  ✓ schema valid\n") //nolint:errcheck
	} else {
		fmt.Fprintf(w, "  ✗ schema: %d finding(s)\n", len(report.schemaErrs)) //nolint:errcheck
		for _, finding := range report.schemaErrs {
			fmt.Fprintf(w, "      %s\n", finding) //nolint:errcheck
		}
	}

	if report.loadErr == "" {
		fmt.Fprintf(w, "  ✓ spec loads cleanly\n") //nolint:errcheck
	} else {
		fmt.Fprintf(w, "  ✗ spec: %s\n", report.loadErr) //nolint:errcheck
	}

	if report.spec == nil {
		fmt.Fprintln(w) //nolint:errcheck
		return
	}

	if report.datasetErr == "" {
		fmt.Fprintf(w, "  ✓ dataset readable\n") //nolint:errcheck
		if len(report.missingCols) == 0 {
			fmt.Fprintf(w, "  ✓ required columns present\n") //nolint:errcheck
		} else {
			fmt.Fprintf(w, "  ✗ missing columns: %s\n", strings.Join(report.missingCols, ", ")) //nolint:errcheck
		}
	} else {
		fmt.Fprintf(w, "  ✗ dataset: %s\n", report.datasetErr) //nolint:errcheck
	}
	fmt.Fprintln(w) //nolint:errcheck

	fmt.Fprintf(w, "%s\n", strings.Repeat("─", 55)) //nolint:errcheck
	printCheckFact(w, "Dataset", report.datasetPath)
	if report.datasetErr == "" {
		printCheckFact(w, "Records", fmt.Sprintf("%d", report.records))
		printCheckFact(w, "Columns", fmt.Sprintf("%d", report.columns))
	}
	artifacts := "default set"
	if report.artifacts > 0 {
		artifacts = fmt.Sprintf("%d configured", report.artifacts)
	}
	printCheckFact(w, "Artifacts", artifacts)
	printCheckFact(w, "Top genres", fmt.Sprintf("%d", report.spec.Analysis.TopGenres))

	if report.ready() {
		fmt.Fprintf(w, "\nReady to run: gametally run %s\n", report.specPath) //nolint:errcheck
	} else {
		fmt.Fprintf(w, "\nFix the findings above, then re-run the check.\n") //nolint:errcheck
	}
}

func printCheckFact(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", padRight(label+":", 12), value) //nolint:errcheck
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func outputCheckJSON(cmd *cobra.Command, report *checkReport) error {
	out := checkJSONReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		SpecPath:  report.specPath,
		SpecName:  report.specName,
		Ready:     report.ready(),
		Schema: schemaJSON{
			Valid:  len(report.schemaErrs) == 0,
			Errors: report.schemaErrs,
		},
		Spec: specJSON{
			Loaded:    report.spec != nil,
			Error:     report.loadErr,
			Artifacts: report.artifacts,
		},
		Dataset: datasetJSON{
			Path:           report.datasetPath,
			Records:        report.records,
			Columns:        report.columns,
			MissingColumns: report.missingCols,
			Error:          report.datasetErr,
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling check report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data)) //nolint:errcheck
	return nil
}
