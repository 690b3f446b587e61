package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gametally/gametally/internal/models"
)

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	// Use the built-in formatting but ensure we control it
	return d.String()
}

// FormatMarkdownSummary formats run results as a markdown summary suitable
// for pasting into a PR or a chat message.
func FormatMarkdownSummary(results *models.Results) string {
	var b strings.Builder
	p := message.NewPrinter(language.English)

	duration := time.Duration(results.Execution.DurationMs) * time.Millisecond

	// Header with overall status
	b.WriteString("## 🎮 Game Library Analysis\n\n")

	statusIcon := "✅ Succeeded"
	if results.Execution.Status != models.StatusOK {
		statusIcon = "❌ Failed"
	}

	b.WriteString(fmt.Sprintf("**Status:** %s | **Games:** %s | **Duration:** %s\n\n",
		statusIcon, p.Sprintf("%d", results.Summary.TotalGames), formatDuration(duration)))

	// Summary stats
	b.WriteString(p.Sprintf("- **Most played:** %s (%d plays)\n",
		results.MostPlayed.Title, results.MostPlayed.Plays))
	b.WriteString(p.Sprintf("- **Total plays:** %d\n", results.Summary.TotalPlays))
	b.WriteString(fmt.Sprintf("- **Average rating:** %.2f (range %.2f - %.2f)\n",
		results.Summary.AverageRating, results.Summary.LowestRating, results.Summary.HighestRating))
	b.WriteString(fmt.Sprintf("- **Unique genres:** %d\n\n", results.Summary.UniqueGenres))

	// Top-genre table
	b.WriteString("### Top Genres\n\n")
	b.WriteString("| # | Genre | Total Plays | Avg Rating |\n")
	b.WriteString("|---|-------|------------:|-----------:|\n")

	ratings := make(map[string]models.GenreRating, len(results.GenreRatings))
	for _, gr := range results.GenreRatings {
		ratings[gr.Genre] = gr
	}

	for i, g := range results.TopGenres {
		rating := "-"
		if gr, ok := ratings[g.Genre]; ok {
			rating = fmt.Sprintf("%.2f", gr.AverageRating)
		}
		b.WriteString(p.Sprintf("| %d | %s | %d | %s |\n", i+1, g.Genre, g.TotalPlays, rating))
	}
	b.WriteString("\n")

	// Artifact list
	if len(results.Artifacts) > 0 {
		b.WriteString("### Artifacts\n\n")
		names := make([]string, 0, len(results.Artifacts))
		for name := range results.Artifacts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(fmt.Sprintf("- `%s`\n", results.Artifacts[name]))
		}
		b.WriteString("\n")
	}

	// Footer with metadata
	b.WriteString("---\n\n")
	b.WriteString(p.Sprintf("**Analysis:** %s | **Dataset:** %s (%d records) | **Run:** %s\n",
		results.SpecName, results.Dataset.Path, results.Dataset.Records, results.RunID))

	return b.String()
}
