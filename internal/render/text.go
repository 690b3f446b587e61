package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gametally/gametally/internal/models"
)

// reportWidth is the column width of the plain-text report rules.
const reportWidth = 80

// textReport writes the plain-text analysis report.
type textReport struct {
	name     string
	filename string
}

// NewTextReport creates the plain-text report renderer. An empty filename
// falls back to "analysis_report.txt".
func NewTextReport(name, filename string) (*textReport, error) {
	if filename == "" {
		filename = "analysis_report.txt"
	}
	return &textReport{name: name, filename: filename}, nil
}

func (tr *textReport) Name() string              { return tr.name }
func (tr *textReport) Kind() models.ArtifactKind { return models.ArtifactTextReport }

func (tr *textReport) Render(ctx context.Context, results *models.Results, outDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := writeArtifact(outDir, tr.filename, []byte(FormatTextReport(results)))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// FormatTextReport produces the full plain-text report body.
func FormatTextReport(results *models.Results) string {
	var b strings.Builder
	p := message.NewPrinter(language.English)

	rule := strings.Repeat("=", reportWidth)
	sep := strings.Repeat("-", reportWidth)

	title := "VIDEO GAME ANALYSIS"
	if results.SpecName != "" {
		title = fmt.Sprintf("%s - %s", title, strings.ToUpper(results.SpecName))
	}

	b.WriteString(rule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", results.GeneratedAt.Format("2006-01-02 15:04:05")))
	if results.Dataset.Path != "" {
		b.WriteString(p.Sprintf("Dataset: %s (%d records)\n", results.Dataset.Path, results.Dataset.Records))
	}
	b.WriteString("\n")

	s := results.Summary
	b.WriteString("GENERAL STATISTICS\n")
	b.WriteString(sep + "\n")
	b.WriteString(p.Sprintf("Total games: %d\n", s.TotalGames))
	b.WriteString(p.Sprintf("Total plays: %d\n", s.TotalPlays))
	b.WriteString(fmt.Sprintf("Average rating: %.2f\n", s.AverageRating))
	b.WriteString(fmt.Sprintf("Highest rating: %.2f\n", s.HighestRating))
	b.WriteString(fmt.Sprintf("Lowest rating: %.2f\n", s.LowestRating))
	b.WriteString(fmt.Sprintf("Unique genres: %d\n", s.UniqueGenres))
	b.WriteString("\n")

	g := results.MostPlayed
	b.WriteString("MOST PLAYED GAME\n")
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", g.Title))
	b.WriteString(fmt.Sprintf("Plays: %s\n", formatPlays(p, g)))
	b.WriteString(fmt.Sprintf("Rating: %s\n", g.Rating))
	b.WriteString(fmt.Sprintf("Genres: %s\n", strings.Join(g.Genres, ", ")))
	b.WriteString(fmt.Sprintf("Platforms: %s\n", g.Platforms))
	b.WriteString(fmt.Sprintf("Release date: %s\n", g.ReleaseDate))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("TOP %d GENRES BY TOTAL PLAYS\n", len(results.TopGenres)))
	b.WriteString(sep + "\n")
	genreWidth := maxGenreWidth(results)
	for i, tg := range results.TopGenres {
		b.WriteString(fmt.Sprintf("%2d. %s %14s plays\n",
			i+1, runewidth.FillRight(tg.Genre, genreWidth), p.Sprintf("%d", tg.TotalPlays)))
	}
	b.WriteString("\n")

	b.WriteString("AVERAGE RATING BY GENRE\n")
	b.WriteString(sep + "\n")
	for _, gr := range results.GenreRatings {
		b.WriteString(p.Sprintf("%s %.2f (%d games)\n",
			runewidth.FillRight(gr.Genre+":", genreWidth+1), gr.AverageRating, gr.GameCount))
	}
	b.WriteString("\n")

	if tg := results.TopGames; tg != nil && len(tg.Genres) > 0 {
		b.WriteString("TOP GAMES BY GENRE\n")
		b.WriteString(sep + "\n")
		for _, genre := range tg.Genres {
			b.WriteString(genre + ":\n")
			for i, game := range tg.ByGenre[genre] {
				b.WriteString(p.Sprintf("  %d. %s (rating %s, %d plays)\n",
					i+1, game.Title, game.Rating, game.Plays))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("End of report\n")
	b.WriteString(rule + "\n")

	return b.String()
}

// formatPlays renders the most-played count, keeping the raw dataset value
// alongside the parsed one when they differ.
func formatPlays(p *message.Printer, g models.GameRecord) string {
	formatted := p.Sprintf("%d", g.Plays)
	if g.RawPlays != "" && g.RawPlays != formatted {
		return fmt.Sprintf("%s (%s)", g.RawPlays, formatted)
	}
	return formatted
}

// maxGenreWidth returns the display width of the widest genre name in the
// ranked sections, so the columns line up for wide characters too.
func maxGenreWidth(results *models.Results) int {
	w := 0
	for _, tg := range results.TopGenres {
		if gw := runewidth.StringWidth(tg.Genre); gw > w {
			w = gw
		}
	}
	for _, gr := range results.GenreRatings {
		if gw := runewidth.StringWidth(gr.Genre); gw > w {
			w = gw
		}
	}
	return w
}
