package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gametally/gametally/internal/pipeline"
)

// captureStdout captures everything written to os.Stdout while fn runs.
// The progress listeners print straight to stdout, so tests have to
// intercept it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String()
}

// -------------------------------------------------------------------------
// Verbose listener

func TestVerboseListener_RunStart(t *testing.T) {
	output := captureStdout(t, func() {
		verboseProgressListener(pipeline.ProgressEvent{EventType: pipeline.EventRunStart})
	})
	assert.Contains(t, output, "Starting analysis...")
}

func TestVerboseListener_PhaseStart(t *testing.T) {
	output := captureStdout(t, func() {
		verboseProgressListener(pipeline.ProgressEvent{
			EventType: pipeline.EventPhaseStart,
			Phase:     pipeline.PhaseExtract,
		})
	})
	assert.Contains(t, output, "[extract] started")
}

func TestVerboseListener_PhaseComplete(t *testing.T) {
	output := captureStdout(t, func() {
		verboseProgressListener(pipeline.ProgressEvent{
			EventType:  pipeline.EventPhaseComplete,
			Phase:      pipeline.PhaseTransform,
			Records:    3,
			DurationMs: 12,
		})
	})
	assert.Contains(t, output, "[transform] 3 record(s) in 12ms")
}

func TestVerboseListener_ArtifactWritten(t *testing.T) {
	output := captureStdout(t, func() {
		verboseProgressListener(pipeline.ProgressEvent{
			EventType: pipeline.EventArtifactWritten,
			Artifact:  "top_genres",
			Path:      "output/top_genres.png",
		})
	})
	assert.Contains(t, output, "wrote output/top_genres.png (top_genres)")
}

func TestVerboseListener_RunComplete(t *testing.T) {
	output := captureStdout(t, func() {
		verboseProgressListener(pipeline.ProgressEvent{
			EventType:  pipeline.EventRunComplete,
			DurationMs: 45000,
		})
	})
	assert.Contains(t, output, "Analysis completed in 45s")
}

func TestVerboseListener_RunFailed(t *testing.T) {
	output := captureStdout(t, func() {
		verboseProgressListener(pipeline.ProgressEvent{
			EventType: pipeline.EventRunFailed,
			Message:   "boom",
		})
	})
	assert.Contains(t, output, "Analysis failed: boom")
}

// -------------------------------------------------------------------------
// Simple listener

func TestSimpleListener_ArtifactWritten(t *testing.T) {
	output := captureStdout(t, func() {
		simpleProgressListener(pipeline.ProgressEvent{
			EventType: pipeline.EventArtifactWritten,
			Artifact:  "report",
			Path:      "output/analysis_report.txt",
		})
	})
	assert.Equal(t, "✓ output/analysis_report.txt\n", output)
}

func TestSimpleListener_IgnoresOtherEvents(t *testing.T) {
	output := captureStdout(t, func() {
		simpleProgressListener(pipeline.ProgressEvent{EventType: pipeline.EventRunStart})
		simpleProgressListener(pipeline.ProgressEvent{
			EventType: pipeline.EventPhaseComplete,
			Phase:     pipeline.PhaseAggregate,
			Records:   3,
		})
		simpleProgressListener(pipeline.ProgressEvent{EventType: pipeline.EventRunComplete})
	})
	assert.Empty(t, output)
}

// -------------------------------------------------------------------------
// Summary printer

func TestPrintSummary(t *testing.T) {
	output := captureStdout(t, func() {
		printSummary(sampleRunResults())
	})

	assert.Contains(t, output, "ANALYSIS RESULTS")
	assert.Contains(t, output, "Total Games:    3")
	assert.Contains(t, output, "Total Plays:    35,000")
	assert.Contains(t, output, "Average Rating: 3.75")
	assert.Contains(t, output, "Rating Range:   3.00 - 4.50")
	assert.Contains(t, output, "Unique Genres:  2")
	assert.Contains(t, output, "Duration:       45s")
	assert.Contains(t, output, "Most Played:    Game C (20,000 plays, rating n/a)")
}

func TestPrintSummary_GenreSections(t *testing.T) {
	output := captureStdout(t, func() {
		printSummary(sampleRunResults())
	})

	assert.Contains(t, output, "TOP GENRES")
	assert.Contains(t, output, "1. Action: 25,000 plays")
	assert.Contains(t, output, "2. RPG: 15,000 plays")
	assert.Contains(t, output, "Genre Ratings:")
	assert.Contains(t, output, "RPG: 3.75 (2 games)")
	assert.Contains(t, output, "Action: 3.00 (2 games)")
}

func TestPrintSummary_Artifacts(t *testing.T) {
	output := captureStdout(t, func() {
		printSummary(sampleRunResults())
	})

	assert.Contains(t, output, "Artifacts:")
	assert.Contains(t, output, "- output/analysis_report.txt")
}

func TestPrintSummary_NoGenreRatings(t *testing.T) {
	results := sampleRunResults()
	results.GenreRatings = nil

	output := captureStdout(t, func() {
		printSummary(results)
	})

	assert.NotContains(t, output, "Genre Ratings:")
}
