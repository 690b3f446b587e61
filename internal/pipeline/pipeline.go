// Package pipeline wires dataset extraction, aggregation and artifact
// rendering into a single analysis run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gametally/gametally/internal/aggregate"
	"github.com/gametally/gametally/internal/coerce"
	"github.com/gametally/gametally/internal/config"
	"github.com/gametally/gametally/internal/dataset"
	"github.com/gametally/gametally/internal/genres"
	"github.com/gametally/gametally/internal/models"
	"github.com/gametally/gametally/internal/render"
)

// Pipeline runs one analysis from dataset to artifacts.
type Pipeline struct {
	cfg       *config.RunConfig
	source    dataset.Source
	renderers []render.Renderer

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart        EventType = "run_start"
	EventPhaseStart      EventType = "phase_start"
	EventPhaseComplete   EventType = "phase_complete"
	EventArtifactWritten EventType = "artifact_written"
	EventRunComplete     EventType = "run_complete"
	EventRunFailed       EventType = "run_failed"
)

// Phase names reported in progress events.
const (
	PhaseExtract   = "extract"
	PhaseTransform = "transform"
	PhaseAggregate = "aggregate"
	PhaseRender    = "render"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType  EventType
	Phase      string
	Artifact   string
	Path       string
	Records    int
	DurationMs int64
	Message    string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRenderers sets the artifact renderers to run after aggregation.
func WithRenderers(renderers ...render.Renderer) Option {
	return func(p *Pipeline) {
		p.renderers = renderers
	}
}

// New creates a pipeline for the given run configuration and dataset source.
func New(cfg *config.RunConfig, source dataset.Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		source:    source,
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// OnProgress registers a progress listener
func (p *Pipeline) OnProgress(listener ProgressListener) {
	p.progressMu.Lock()
	defer p.progressMu.Unlock()
	p.listeners = append(p.listeners, listener)
}

func (p *Pipeline) notifyProgress(event ProgressEvent) {
	p.progressMu.Lock()
	listeners := make([]ProgressListener, len(p.listeners))
	copy(listeners, p.listeners)
	p.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run executes the full analysis: load the dataset, derive the aggregates
// and write every configured artifact. The returned results carry execution
// metadata even when the run fails partway, so callers can persist them.
func (p *Pipeline) Run(ctx context.Context) (*models.Results, error) {
	start := time.Now()

	results := &models.Results{
		RunID:       uuid.NewString(),
		GeneratedAt: start,
		Artifacts:   map[string]string{},
		Execution: models.Execution{
			StartedAt: start,
			Status:    models.StatusFailed,
		},
	}
	if spec := p.cfg.Spec(); spec != nil {
		results.SpecName = spec.Name
	}

	defer func() {
		results.Execution.DurationMs = time.Since(start).Milliseconds()
	}()

	p.notifyProgress(ProgressEvent{EventType: EventRunStart})
	slog.Debug("run started", "run_id", results.RunID, "spec", results.SpecName)

	if err := p.runPhases(ctx, results); err != nil {
		results.Execution.ErrorMsg = err.Error()
		p.notifyProgress(ProgressEvent{
			EventType:  EventRunFailed,
			Message:    err.Error(),
			DurationMs: time.Since(start).Milliseconds(),
		})
		return results, err
	}

	results.Execution.Status = models.StatusOK
	p.notifyProgress(ProgressEvent{
		EventType:  EventRunComplete,
		DurationMs: time.Since(start).Milliseconds(),
	})
	return results, nil
}

func (p *Pipeline) runPhases(ctx context.Context, results *models.Results) error {
	table, err := p.extract(ctx, results)
	if err != nil {
		return err
	}

	records, index := p.transform(table)

	if err := p.aggregate(records, index, results); err != nil {
		return err
	}

	return p.render(ctx, results)
}

// extract loads the dataset and verifies the required columns are present.
func (p *Pipeline) extract(ctx context.Context, results *models.Results) (*dataset.Table, error) {
	p.notifyProgress(ProgressEvent{EventType: EventPhaseStart, Phase: PhaseExtract})
	start := time.Now()

	table, err := p.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if missing := table.MissingColumns(); len(missing) > 0 {
		return nil, fmt.Errorf("dataset %s is missing required columns: %s",
			table.Path, strings.Join(missing, ", "))
	}

	results.Dataset = models.DatasetInfo{
		Path:    table.Path,
		Records: len(table.Rows),
		Columns: len(table.Columns),
	}

	slog.Debug("dataset loaded", "path", table.Path, "records", len(table.Rows))
	p.notifyProgress(ProgressEvent{
		EventType:  EventPhaseComplete,
		Phase:      PhaseExtract,
		Records:    len(table.Rows),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return table, nil
}

// transform coerces the raw rows into typed records and builds the genre index.
func (p *Pipeline) transform(table *dataset.Table) ([]models.GameRecord, *genres.Index) {
	p.notifyProgress(ProgressEvent{EventType: EventPhaseStart, Phase: PhaseTransform})
	start := time.Now()

	records := coerce.Records(table.Rows)
	index := genres.NewIndex(records)

	slog.Debug("records coerced", "records", len(records), "genres", index.Distinct())
	p.notifyProgress(ProgressEvent{
		EventType:  EventPhaseComplete,
		Phase:      PhaseTransform,
		Records:    len(records),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return records, index
}

// aggregate computes every analysis the run configuration asks for.
func (p *Pipeline) aggregate(records []models.GameRecord, index *genres.Index, results *models.Results) error {
	p.notifyProgress(ProgressEvent{EventType: EventPhaseStart, Phase: PhaseAggregate})
	start := time.Now()

	var analysis models.AnalysisConfig
	if spec := p.cfg.Spec(); spec != nil {
		analysis = spec.Analysis
	}

	topGenres := analysis.TopGenres
	if topGenres < 1 {
		topGenres = models.DefaultTopGenres
	}
	workers := analysis.Workers
	if workers < 1 {
		workers = models.DefaultWorkers
	}

	mostPlayed, err := aggregate.MostPlayed(records)
	if err != nil {
		return err
	}
	results.MostPlayed = mostPlayed

	if analysis.Parallel {
		results.TopGenres = aggregate.TopGenresByPlaysParallel(records, topGenres, workers)
	} else {
		results.TopGenres = aggregate.TopGenresByPlays(records, topGenres)
	}

	results.GenreRatings = aggregate.RatingSummary(results.TopGenreNames(), index)

	summary, err := aggregate.Summarize(records, index)
	if err != nil {
		return err
	}
	results.Summary = summary

	if analysis.TopGames.Enabled {
		nGenres := analysis.TopGames.Genres
		if nGenres < 1 {
			nGenres = models.DefaultTopGamesGenres
		}
		nGames := analysis.TopGames.PerGenre
		if nGames < 1 {
			nGames = models.DefaultTopGamesPerGenre
		}
		results.TopGames = aggregate.TopGamesByGenres(index, results.TopGenres, nGenres, nGames)
	}

	slog.Debug("aggregation complete",
		"most_played", results.MostPlayed.Title,
		"top_genres", len(results.TopGenres),
		"parallel", analysis.Parallel)
	p.notifyProgress(ProgressEvent{
		EventType:  EventPhaseComplete,
		Phase:      PhaseAggregate,
		Records:    len(records),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return nil
}

// render writes every configured artifact under the output directory.
func (p *Pipeline) render(ctx context.Context, results *models.Results) error {
	if len(p.renderers) == 0 {
		return nil
	}

	p.notifyProgress(ProgressEvent{EventType: EventPhaseStart, Phase: PhaseRender})
	start := time.Now()

	outDir := p.cfg.OutputDir()
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	for _, r := range p.renderers {
		if err := ctx.Err(); err != nil {
			return err
		}

		paths, err := r.Render(ctx, results, outDir)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", r.Name(), err)
		}

		for _, path := range paths {
			results.Artifacts[filepath.Base(path)] = path
			p.notifyProgress(ProgressEvent{
				EventType: EventArtifactWritten,
				Artifact:  r.Name(),
				Path:      path,
			})
		}
		slog.Debug("artifact rendered", "name", r.Name(), "files", len(paths))
	}

	p.notifyProgress(ProgressEvent{
		EventType:  EventPhaseComplete,
		Phase:      PhaseRender,
		Records:    len(results.Artifacts),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return nil
}
