package render

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gametally/gametally/internal/models"
)

// markdownReport writes the GitHub-flavored Markdown report, optionally
// paired with a standalone HTML version of the same content.
type markdownReport struct {
	name     string
	filename string
	html     bool
}

// NewMarkdownReport creates the Markdown report renderer. An empty filename
// falls back to "analysis_report.md".
func NewMarkdownReport(name, filename string, html bool) (*markdownReport, error) {
	if filename == "" {
		filename = "analysis_report.md"
	}
	return &markdownReport{name: name, filename: filename, html: html}, nil
}

func (mr *markdownReport) Name() string              { return mr.name }
func (mr *markdownReport) Kind() models.ArtifactKind { return models.ArtifactMarkdownReport }

func (mr *markdownReport) Render(ctx context.Context, results *models.Results, outDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body := FormatMarkdownReport(results)

	path, err := writeArtifact(outDir, mr.filename, []byte(body))
	if err != nil {
		return nil, err
	}
	paths := []string{path}

	if mr.html {
		doc, err := markdownToHTML(results.SpecName, body)
		if err != nil {
			return nil, err
		}

		htmlName := strings.TrimSuffix(mr.filename, filepath.Ext(mr.filename)) + ".html"
		htmlPath, err := writeArtifact(outDir, htmlName, []byte(doc))
		if err != nil {
			return nil, err
		}
		paths = append(paths, htmlPath)
	}

	return paths, nil
}

// FormatMarkdownReport produces the Markdown report body.
func FormatMarkdownReport(results *models.Results) string {
	var b strings.Builder
	p := message.NewPrinter(language.English)

	b.WriteString("# Video Game Analysis Report\n\n")
	if results.SpecName != "" {
		b.WriteString(fmt.Sprintf("**Spec:** %s  \n", results.SpecName))
	}
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", results.GeneratedAt.Format("2006-01-02 15:04:05")))
	if results.Dataset.Path != "" {
		b.WriteString(p.Sprintf("**Dataset:** `%s` (%d records)\n\n", results.Dataset.Path, results.Dataset.Records))
	}

	s := results.Summary
	b.WriteString("## General Statistics\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|---|--:|\n")
	b.WriteString(p.Sprintf("| Total games | %d |\n", s.TotalGames))
	b.WriteString(p.Sprintf("| Total plays | %d |\n", s.TotalPlays))
	b.WriteString(fmt.Sprintf("| Average rating | %.2f |\n", s.AverageRating))
	b.WriteString(fmt.Sprintf("| Highest rating | %.2f |\n", s.HighestRating))
	b.WriteString(fmt.Sprintf("| Lowest rating | %.2f |\n", s.LowestRating))
	b.WriteString(fmt.Sprintf("| Unique genres | %d |\n\n", s.UniqueGenres))

	g := results.MostPlayed
	b.WriteString("## Most Played Game\n\n")
	b.WriteString(p.Sprintf("**%s** with %d plays.\n\n", g.Title, g.Plays))
	b.WriteString(fmt.Sprintf("- **Rating:** %s\n", g.Rating))
	b.WriteString(fmt.Sprintf("- **Genres:** %s\n", strings.Join(g.Genres, ", ")))
	b.WriteString(fmt.Sprintf("- **Platforms:** %s\n", g.Platforms))
	b.WriteString(fmt.Sprintf("- **Release date:** %s\n\n", g.ReleaseDate))

	b.WriteString("## Top Genres by Total Plays\n\n")
	b.WriteString("| # | Genre | Total plays |\n")
	b.WriteString("|--:|---|--:|\n")
	for i, tg := range results.TopGenres {
		b.WriteString(p.Sprintf("| %d | %s | %d |\n", i+1, tg.Genre, tg.TotalPlays))
	}
	b.WriteString("\n")

	b.WriteString("## Average Rating by Genre\n\n")
	b.WriteString("| Genre | Average rating | Games |\n")
	b.WriteString("|---|--:|--:|\n")
	for _, gr := range results.GenreRatings {
		b.WriteString(fmt.Sprintf("| %s | %.2f | %d |\n", gr.Genre, gr.AverageRating, gr.GameCount))
	}
	b.WriteString("\n")

	if tg := results.TopGames; tg != nil && len(tg.Genres) > 0 {
		b.WriteString("## Top Games by Genre\n\n")
		for _, genre := range tg.Genres {
			b.WriteString(fmt.Sprintf("### %s\n\n", genre))
			b.WriteString("| # | Title | Rating | Plays |\n")
			b.WriteString("|--:|---|--:|--:|\n")
			for i, game := range tg.ByGenre[genre] {
				b.WriteString(p.Sprintf("| %d | %s | %s | %d |\n", i+1, game.Title, game.Rating, game.Plays))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// markdownToHTML converts the Markdown body into a standalone HTML document.
func markdownToHTML(title, body string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("converting report to HTML: %w", err)
	}

	if title == "" {
		title = "Video Game Analysis"
	}
	return fmt.Sprintf(htmlShell, title, buf.String()), nil
}

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.7rem; text-align: left; }
th { background: #f0f0f0; }
</style>
</head>
<body>
%s</body>
</html>
`
