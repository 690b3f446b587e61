package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gametally/gametally/internal/config"
	"github.com/gametally/gametally/internal/dataset"
	"github.com/gametally/gametally/internal/models"
	"github.com/gametally/gametally/internal/pipeline"
	"github.com/gametally/gametally/internal/render"
)

var (
	datasetOverride string
	outputDir       string
	resultsPath     string
	verbose         bool
	parallel        bool
	workers         int
	format          string
	logFile         string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [analysis.yaml]",
		Short: "Run an analysis",
		Long: `Run an analysis from a spec file.

The spec file names the dataset and configures the aggregations and the
artifacts to produce. Relative dataset paths resolve against the spec
file's directory. With no argument, analysis.yaml in the current
directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&datasetOverride, "dataset", "", "Dataset path (overrides spec config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for report and chart artifacts (overrides spec config)")
	cmd.Flags().StringVarP(&resultsPath, "output", "o", "", "Output JSON file for results (overrides spec config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-phase progress")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Sum genre plays concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().StringVar(&format, "format", "default", "Summary format: default, markdown")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Mirror the run log to a file")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	specPath := "analysis.yaml"
	if len(args) > 0 {
		specPath = args[0]
	}

	// Load spec
	spec, err := models.LoadAnalysisSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}

	// CLI flags override spec config
	if parallel {
		spec.Analysis.Parallel = true
	}
	if workers > 0 {
		spec.Analysis.Workers = workers
	}

	// Get spec directory for resolving relative paths
	specDir := filepath.Dir(specPath)
	if !filepath.IsAbs(specDir) {
		absSpecDir, err := filepath.Abs(specDir)
		if err == nil {
			specDir = absSpecDir
		}
	}

	cfg := config.NewRunConfig(spec,
		config.WithSpecDir(specDir),
		config.WithDatasetPath(datasetOverride),
		config.WithOutputDir(outputDir),
		config.WithResultsPath(resultsPath),
		config.WithLogPath(logFile),
		config.WithVerbose(verbose),
	)

	if path := cfg.LogPath(); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		level := slog.LevelInfo
		if debugLogging {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(
			io.MultiWriter(os.Stderr, f),
			&slog.HandlerOptions{Level: level},
		)))
	}

	// Open the dataset source
	var sourceOpts []dataset.SourceOption
	if rows := spec.Dataset.Rows; rows != [2]int{} {
		sourceOpts = append(sourceOpts, dataset.WithRows(rows[0], rows[1]))
	}
	source, err := dataset.Open(cfg.DatasetPath(), sourceOpts...)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}

	// Build renderers from the spec's artifact list, or the full default set
	var renderers []render.Renderer
	if len(spec.Artifacts) > 0 {
		for _, a := range spec.Artifacts {
			r, err := render.Create(a.Kind, a.Identifier, a.Parameters)
			if err != nil {
				return fmt.Errorf("failed to create artifact renderer: %w", err)
			}
			renderers = append(renderers, r)
		}
	} else {
		renderers, err = render.DefaultSet()
		if err != nil {
			return fmt.Errorf("failed to create default renderers: %w", err)
		}
	}

	p := pipeline.New(cfg, source, pipeline.WithRenderers(renderers...))

	// Add progress listener
	if verbose {
		p.OnProgress(verboseProgressListener)
	} else {
		p.OnProgress(simpleProgressListener)
	}

	ctx := context.Background()

	fmt.Printf("Running analysis: %s\n", spec.Name)
	fmt.Printf("Dataset: %s\n", cfg.DatasetPath())
	if spec.Analysis.Parallel {
		w := spec.Analysis.Workers
		if w <= 0 {
			w = models.DefaultWorkers
		}
		fmt.Printf("Parallel: %d workers\n", w)
	}
	fmt.Println()

	results, runErr := p.Run(ctx)
	if runErr != nil {
		// Persist the failed run's execution record before reporting the error.
		if path := cfg.ResultsPath(); path != "" && results != nil {
			if err := saveResults(results, path); err != nil {
				slog.Error("saving results", "path", path, "error", err)
			}
		}
		return fmt.Errorf("analysis failed: %w", runErr)
	}

	// Print results based on format
	switch format {
	case "markdown":
		fmt.Print(FormatMarkdownSummary(results))
	case "default":
		printSummary(results)
	default:
		return fmt.Errorf("unknown output format: %s (supported: default, markdown)", format)
	}

	if path := cfg.ResultsPath(); path != "" {
		if err := saveResults(results, path); err != nil {
			return fmt.Errorf("failed to save results: %w", err)
		}
		fmt.Printf("\nResults saved to: %s\n", path)
	}

	return nil
}

func verboseProgressListener(event pipeline.ProgressEvent) {
	switch event.EventType {
	case pipeline.EventRunStart:
		fmt.Println("Starting analysis...")
	case pipeline.EventPhaseStart:
		fmt.Printf("[%s] started\n", event.Phase)
	case pipeline.EventPhaseComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("[%s] %d record(s) in %v\n", event.Phase, event.Records, duration)
	case pipeline.EventArtifactWritten:
		fmt.Printf("  wrote %s (%s)\n", event.Path, event.Artifact)
	case pipeline.EventRunComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("Analysis completed in %v\n\n", duration)
	case pipeline.EventRunFailed:
		fmt.Printf("Analysis failed: %s\n", event.Message)
	}
}

func simpleProgressListener(event pipeline.ProgressEvent) {
	switch event.EventType {
	case pipeline.EventArtifactWritten:
		fmt.Printf("✓ %s\n", event.Path)
	}
}

func printSummary(results *models.Results) {
	p := message.NewPrinter(language.English)

	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println(" ANALYSIS RESULTS")
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println()

	s := results.Summary
	p.Printf("Total Games:    %d\n", s.TotalGames)
	p.Printf("Total Plays:    %d\n", s.TotalPlays)
	fmt.Printf("Average Rating: %.2f\n", s.AverageRating)
	fmt.Printf("Rating Range:   %.2f - %.2f\n", s.LowestRating, s.HighestRating)
	fmt.Printf("Unique Genres:  %d\n", s.UniqueGenres)

	duration := time.Duration(results.Execution.DurationMs) * time.Millisecond
	fmt.Printf("Duration:       %v\n", duration)
	fmt.Println()

	mp := results.MostPlayed
	p.Printf("Most Played:    %s (%d plays, rating %s)\n", mp.Title, mp.Plays, mp.Rating)
	fmt.Println()

	// Per-genre breakdown
	fmt.Println("-" + strings.Repeat("-", 50))
	fmt.Println(" TOP GENRES")
	fmt.Println("-" + strings.Repeat("-", 50))
	for i, g := range results.TopGenres {
		p.Printf("  %2d. %s: %d plays\n", i+1, g.Genre, g.TotalPlays)
	}
	fmt.Println()

	if len(results.GenreRatings) > 0 {
		fmt.Println("Genre Ratings:")
		for _, gr := range results.GenreRatings {
			fmt.Printf("  %s: %.2f (%d games)\n", gr.Genre, gr.AverageRating, gr.GameCount)
		}
		fmt.Println()
	}

	if len(results.Artifacts) > 0 {
		fmt.Println("Artifacts:")
		names := make([]string, 0, len(results.Artifacts))
		for name := range results.Artifacts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  - %s\n", results.Artifacts[name])
		}
		fmt.Println()
	}
}

func saveResults(results *models.Results, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
