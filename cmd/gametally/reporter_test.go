package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gametally/gametally/internal/models"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0ms"},
		{"sub-second", 500 * time.Millisecond, "500ms"},
		{"almost a second", 999 * time.Millisecond, "999ms"},
		{"exactly a second", time.Second, "1s"},
		{"seconds", 45 * time.Second, "45s"},
		{"fractional seconds", 1500 * time.Millisecond, "1.5s"},
		{"minutes", 2*time.Minute + 3*time.Second, "2m3s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}

// sampleRunResults mirrors the worked three-game library: two RPGs, two
// action games, one of them unrated.
func sampleRunResults() *models.Results {
	return &models.Results{
		RunID:       "run-0001",
		SpecName:    "library-analysis",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 45, 0, time.UTC),
		Dataset: models.DatasetInfo{
			Path:    "games.csv",
			Records: 3,
			Columns: 6,
		},
		MostPlayed: models.GameRecord{
			Title:  "Game C",
			Plays:  20000,
			Rating: models.NoRating(),
			Genres: []string{"Action"},
		},
		TopGenres: []models.GenrePlays{
			{Genre: "Action", TotalPlays: 25000},
			{Genre: "RPG", TotalPlays: 15000},
		},
		GenreRatings: []models.GenreRating{
			{Genre: "RPG", AverageRating: 3.75, GameCount: 2},
			{Genre: "Action", AverageRating: 3.0, GameCount: 2},
		},
		Summary: models.SummaryStats{
			TotalGames:    3,
			TotalPlays:    35000,
			AverageRating: 3.75,
			HighestRating: 4.5,
			LowestRating:  3.0,
			UniqueGenres:  2,
		},
		Artifacts: map[string]string{
			"report": "output/analysis_report.txt",
		},
		Execution: models.Execution{
			StartedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			DurationMs: 45000,
			Status:     models.StatusOK,
		},
	}
}

func TestFormatMarkdownSummary(t *testing.T) {
	output := FormatMarkdownSummary(sampleRunResults())

	assert.Contains(t, output, "## 🎮 Game Library Analysis")
	assert.Contains(t, output, "**Status:** ✅ Succeeded | **Games:** 3 | **Duration:** 45s")
	assert.Contains(t, output, "- **Most played:** Game C (20,000 plays)")
	assert.Contains(t, output, "- **Total plays:** 35,000")
	assert.Contains(t, output, "- **Average rating:** 3.75 (range 3.00 - 4.50)")
	assert.Contains(t, output, "- **Unique genres:** 2")
}

func TestFormatMarkdownSummary_GenreTable(t *testing.T) {
	output := FormatMarkdownSummary(sampleRunResults())

	assert.Contains(t, output, "### Top Genres")
	assert.Contains(t, output, "| # | Genre | Total Plays | Avg Rating |")
	assert.Contains(t, output, "| 1 | Action | 25,000 | 3.00 |")
	assert.Contains(t, output, "| 2 | RPG | 15,000 | 3.75 |")
}

func TestFormatMarkdownSummary_UnratedGenreDash(t *testing.T) {
	results := sampleRunResults()
	// Nobody rated an action game, so the genre has no rating row.
	results.GenreRatings = []models.GenreRating{
		{Genre: "RPG", AverageRating: 3.75, GameCount: 2},
	}

	output := FormatMarkdownSummary(results)
	assert.Contains(t, output, "| 1 | Action | 25,000 | - |")
	assert.Contains(t, output, "| 2 | RPG | 15,000 | 3.75 |")
}

func TestFormatMarkdownSummary_FailedStatus(t *testing.T) {
	results := sampleRunResults()
	results.Execution.Status = models.StatusFailed
	results.Execution.ErrorMsg = "dataset: missing required columns"

	output := FormatMarkdownSummary(results)
	assert.Contains(t, output, "**Status:** ❌ Failed")
}

func TestFormatMarkdownSummary_Footer(t *testing.T) {
	output := FormatMarkdownSummary(sampleRunResults())

	assert.Contains(t, output, "**Analysis:** library-analysis | **Dataset:** games.csv (3 records) | **Run:** run-0001")
}

func TestFormatMarkdownSummary_ArtifactsSorted(t *testing.T) {
	results := sampleRunResults()
	results.Artifacts = map[string]string{
		"top_genres":  "output/top_genres.png",
		"most_played": "output/most_played.png",
		"report":      "output/analysis_report.txt",
	}

	output := FormatMarkdownSummary(results)
	assert.Contains(t, output, "### Artifacts")
	assert.Contains(t, output, "- `output/most_played.png`")

	// Sorted by artifact name: most_played, report, top_genres.
	mostPlayed := strings.Index(output, "most_played.png")
	report := strings.Index(output, "analysis_report.txt")
	topGenres := strings.Index(output, "top_genres.png")
	assert.Less(t, mostPlayed, report)
	assert.Less(t, report, topGenres)
}

func TestFormatMarkdownSummary_NoArtifacts(t *testing.T) {
	results := sampleRunResults()
	results.Artifacts = nil

	output := FormatMarkdownSummary(results)
	assert.NotContains(t, output, "### Artifacts")
}
