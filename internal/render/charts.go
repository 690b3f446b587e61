package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/gametally/gametally/internal/models"
)

var (
	barBlue   = drawing.ColorFromHex("1f77b4")
	playsBlue = drawing.ColorFromHex("3498db")
	ratingRed = drawing.ColorFromHex("e74c3c")
)

// ChartArgs holds the options shared by every chart renderer.
type ChartArgs struct {
	// Filename overrides the default output file name.
	Filename string
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int
}

// sized returns the configured dimensions, falling back to the defaults for
// anything unset.
func (a ChartArgs) sized(defWidth, defHeight int) (int, int) {
	w, h := a.Width, a.Height
	if w <= 0 {
		w = defWidth
	}
	if h <= 0 {
		h = defHeight
	}
	return w, h
}

// mostPlayedChart draws a single-bar chart spotlighting the most played game.
type mostPlayedChart struct {
	name string
	args ChartArgs
}

// NewMostPlayedChart creates the most-played-game chart renderer.
func NewMostPlayedChart(name string, args ChartArgs) (*mostPlayedChart, error) {
	if args.Filename == "" {
		args.Filename = "most_played.png"
	}
	return &mostPlayedChart{name: name, args: args}, nil
}

func (mc *mostPlayedChart) Name() string              { return mc.name }
func (mc *mostPlayedChart) Kind() models.ArtifactKind { return models.ArtifactMostPlayed }

func (mc *mostPlayedChart) Render(ctx context.Context, results *models.Results, outDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := results.MostPlayed
	w, h := mc.args.sized(1000, 600)

	label := g.Title
	if g.Rating.Present {
		label = fmt.Sprintf("%s (rating %.1f)", g.Title, g.Rating.Value)
	}

	maxPlays := float64(g.Plays)
	if maxPlays <= 0 {
		maxPlays = 1
	}

	bc := chart.BarChart{
		Title:      "Most played game",
		Width:      w,
		Height:     h,
		BarWidth:   120,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: maxPlays * 1.1},
			ValueFormatter: playsTickFormatter,
		},
		Bars: []chart.Value{
			{Label: label, Value: float64(g.Plays), Style: chart.Style{FillColor: barBlue, StrokeColor: barBlue}},
		},
	}

	path, err := renderPNG(outDir, mc.args.Filename, bc.Render)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// topGenresChart draws the ranked genres as a bar chart.
type topGenresChart struct {
	name string
	args ChartArgs
}

// NewTopGenresChart creates the top-genres chart renderer.
func NewTopGenresChart(name string, args ChartArgs) (*topGenresChart, error) {
	if args.Filename == "" {
		args.Filename = "top_genres.png"
	}
	return &topGenresChart{name: name, args: args}, nil
}

func (tc *topGenresChart) Name() string              { return tc.name }
func (tc *topGenresChart) Kind() models.ArtifactKind { return models.ArtifactTopGenres }

func (tc *topGenresChart) Render(ctx context.Context, results *models.Results, outDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(results.TopGenres) == 0 {
		slog.Debug("no ranked genres, skipping chart", "artifact", tc.name)
		return nil, nil
	}

	w, h := tc.args.sized(1400, 1000)

	bars := make([]chart.Value, 0, len(results.TopGenres))
	maxPlays := 1.0
	for _, g := range results.TopGenres {
		if v := float64(g.TotalPlays); v > maxPlays {
			maxPlays = v
		}
		bars = append(bars, chart.Value{
			Label: runewidth.Truncate(g.Genre, 16, "…"),
			Value: float64(g.TotalPlays),
			Style: chart.Style{FillColor: barBlue, StrokeColor: barBlue},
		})
	}

	bc := chart.BarChart{
		Title:      "Top genres by total plays",
		Width:      w,
		Height:     h,
		BarWidth:   barWidthFor(w, len(bars)),
		BarSpacing: 10,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: maxPlays * 1.05},
			ValueFormatter: playsTickFormatter,
		},
		Bars: bars,
	}

	path, err := renderPNG(outDir, tc.args.Filename, bc.Render)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// ratingsChart draws the average-rating-by-genre summary as a pie chart.
type ratingsChart struct {
	name string
	args ChartArgs
	top  int
}

// NewRatingsChart creates the genre ratings pie chart renderer. The pie shows
// at most top genres, defaulting to 15.
func NewRatingsChart(name string, args ChartArgs, top int) (*ratingsChart, error) {
	if args.Filename == "" {
		args.Filename = "genre_ratings.png"
	}
	if top <= 0 {
		top = 15
	}
	return &ratingsChart{name: name, args: args, top: top}, nil
}

func (rc *ratingsChart) Name() string              { return rc.name }
func (rc *ratingsChart) Kind() models.ArtifactKind { return models.ArtifactRatings }

func (rc *ratingsChart) Render(ctx context.Context, results *models.Results, outDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := results.GenreRatings
	if len(entries) > rc.top {
		entries = entries[:rc.top]
	}

	values := make([]chart.Value, 0, len(entries))
	total := 0.0
	for _, e := range entries {
		total += e.AverageRating
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.2f)", runewidth.Truncate(e.Genre, 16, "…"), e.AverageRating),
			Value: e.AverageRating,
		})
	}

	// A pie of zero slices (or all-zero ratings) has nothing to show.
	if len(values) == 0 || total <= 0 {
		slog.Debug("no genre ratings, skipping chart", "artifact", rc.name)
		return nil, nil
	}

	w, h := rc.args.sized(900, 900)

	pc := chart.PieChart{
		Title:  fmt.Sprintf("Average rating share (top %d genres)", len(values)),
		Width:  w,
		Height: h,
		Values: values,
	}

	path, err := renderPNG(outDir, rc.args.Filename, pc.Render)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// combinedChart plots total plays and average rating for the ranked genres
// on a shared X axis, ratings on the secondary Y axis.
type combinedChart struct {
	name string
	args ChartArgs
	top  int
}

// NewCombinedChart creates the plays-versus-ratings chart renderer. The chart
// shows at most top genres, defaulting to 15.
func NewCombinedChart(name string, args ChartArgs, top int) (*combinedChart, error) {
	if args.Filename == "" {
		args.Filename = "combined_analysis.png"
	}
	if top <= 0 {
		top = 15
	}
	return &combinedChart{name: name, args: args, top: top}, nil
}

func (cc *combinedChart) Name() string              { return cc.name }
func (cc *combinedChart) Kind() models.ArtifactKind { return models.ArtifactCombined }

func (cc *combinedChart) Render(ctx context.Context, results *models.Results, outDir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ratingByGenre := make(map[string]float64, len(results.GenreRatings))
	for _, gr := range results.GenreRatings {
		ratingByGenre[gr.Genre] = gr.AverageRating
	}

	// Keep the play-count ranking and drop genres without a rated game.
	var (
		ticks   []chart.Tick
		xs      []float64
		plays   []float64
		ratings []float64
	)
	maxPlays := 1.0
	for _, tg := range results.TopGenres {
		rating, ok := ratingByGenre[tg.Genre]
		if !ok {
			continue
		}

		x := float64(len(xs))
		ticks = append(ticks, chart.Tick{Value: x, Label: runewidth.Truncate(tg.Genre, 14, "…")})
		xs = append(xs, x)
		plays = append(plays, float64(tg.TotalPlays))
		ratings = append(ratings, rating)
		if v := float64(tg.TotalPlays); v > maxPlays {
			maxPlays = v
		}

		if len(xs) == cc.top {
			break
		}
	}

	if len(xs) < 2 {
		slog.Debug("not enough genres for a combined chart, skipping", "artifact", cc.name)
		return nil, nil
	}

	w, h := cc.args.sized(1400, 800)

	c := chart.Chart{
		Title:  "Most played genres vs average rating",
		Width:  w,
		Height: h,
		XAxis: chart.XAxis{
			Ticks:     ticks,
			TickStyle: chart.Style{TextRotationDegrees: 45},
			Range:     &chart.ContinuousRange{Min: -0.5, Max: float64(len(xs)-1) + 0.5},
		},
		YAxis: chart.YAxis{
			Name:           "Total plays",
			Range:          &chart.ContinuousRange{Min: 0, Max: maxPlays * 1.05},
			ValueFormatter: playsTickFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:  "Average rating",
			Range: &chart.ContinuousRange{Min: 0, Max: 5},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Total plays",
				XValues: xs,
				YValues: plays,
				Style: chart.Style{
					StrokeColor: playsBlue,
					StrokeWidth: 2.0,
					FillColor:   playsBlue.WithAlpha(110),
				},
			},
			chart.ContinuousSeries{
				Name:    "Average rating",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: ratings,
				Style: chart.Style{
					StrokeColor: ratingRed,
					StrokeWidth: 2.0,
					DotColor:    ratingRed,
					DotWidth:    4.0,
				},
			},
		},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	path, err := renderPNG(outDir, cc.args.Filename, c.Render)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// topGamesCharts draws one ratings chart per analyzed genre, plus an
// optional combined chart across all of them.
type topGamesCharts struct {
	name     string
	prefix   string
	combined bool
	width    int
	height   int
}

// NewTopGamesCharts creates the per-genre top games chart renderer. Files are
// named prefix_<genre>.png, defaulting the prefix to "top_games".
func NewTopGamesCharts(name, prefix string, combined bool, width, height int) (*topGamesCharts, error) {
	if prefix == "" {
		prefix = "top_games"
	}
	return &topGamesCharts{name: name, prefix: prefix, combined: combined, width: width, height: height}, nil
}

func (tg *topGamesCharts) Name() string              { return tg.name }
func (tg *topGamesCharts) Kind() models.ArtifactKind { return models.ArtifactTopGames }

func (tg *topGamesCharts) Render(ctx context.Context, results *models.Results, outDir string) ([]string, error) {
	top := results.TopGames
	if top == nil || len(top.Genres) == 0 {
		slog.Debug("top games analysis not present, skipping charts", "artifact", tg.name)
		return nil, nil
	}

	w := tg.width
	if w <= 0 {
		w = 900
	}
	h := tg.height
	if h <= 0 {
		h = 600
	}

	var paths []string
	for _, genre := range top.Genres {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		bars := ratingBars(top.ByGenre[genre], func(g models.GameRecord) string {
			return runewidth.Truncate(g.Title, 18, "…")
		})
		if len(bars) == 0 {
			slog.Debug("no rated games in genre, skipping chart", "artifact", tg.name, "genre", genre)
			continue
		}

		bc := chart.BarChart{
			Title:      fmt.Sprintf("Top games in %s by rating", genre),
			Width:      w,
			Height:     h,
			BarWidth:   barWidthFor(w, len(bars)),
			BarSpacing: 10,
			Background: chart.Style{Padding: chart.Box{Top: 40}},
			XAxis:      chart.Style{TextRotationDegrees: 45},
			YAxis: chart.YAxis{
				Range: &chart.ContinuousRange{Min: 0, Max: 5},
			},
			Bars: bars,
		}

		filename := fmt.Sprintf("%s_%s.png", tg.prefix, slugify(genre))
		path, err := renderPNG(outDir, filename, bc.Render)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	if tg.combined {
		bars := make([]chart.Value, 0, len(top.Combined))
		for _, entry := range top.Combined {
			if !entry.Game.Rating.Present {
				continue
			}
			bars = append(bars, chart.Value{
				Label: fmt.Sprintf("%s / %s", runewidth.Truncate(entry.Game.Title, 14, "…"), runewidth.Truncate(entry.Genre, 10, "…")),
				Value: entry.Game.Rating.Value,
				Style: chart.Style{FillColor: barBlue, StrokeColor: barBlue},
			})
		}

		if len(bars) > 0 {
			cw := tg.width
			if cw <= 0 {
				cw = 1600
			}

			bc := chart.BarChart{
				Title:      "Top games across genres by rating",
				Width:      cw,
				Height:     h,
				BarWidth:   barWidthFor(cw, len(bars)),
				BarSpacing: 8,
				Background: chart.Style{Padding: chart.Box{Top: 40}},
				XAxis:      chart.Style{TextRotationDegrees: 45},
				YAxis: chart.YAxis{
					Range: &chart.ContinuousRange{Min: 0, Max: 5},
				},
				Bars: bars,
			}

			path, err := renderPNG(outDir, tg.prefix+"_combined.png", bc.Render)
			if err != nil {
				return nil, err
			}
			paths = append(paths, path)
		}
	}

	return paths, nil
}

// ratingBars converts the rated games of one genre into chart values.
func ratingBars(games []models.GameRecord, label func(models.GameRecord) string) []chart.Value {
	var bars []chart.Value
	for _, g := range games {
		if !g.Rating.Present {
			continue
		}
		bars = append(bars, chart.Value{
			Label: label(g),
			Value: g.Rating.Value,
			Style: chart.Style{FillColor: barBlue, StrokeColor: barBlue},
		})
	}
	return bars
}

// playsTickFormatter shortens play-count axis labels to thousands.
func playsTickFormatter(v any) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	if f >= 1000 {
		return fmt.Sprintf("%.0fK", f/1000)
	}
	return fmt.Sprintf("%.0f", f)
}

// barWidthFor sizes bars so the whole set fits the canvas.
func barWidthFor(width, bars int) int {
	if bars < 1 {
		return 1
	}
	bw := (width - 150) / bars
	if bw > 80 {
		bw = 80
	}
	if bw < 8 {
		bw = 8
	}
	return bw
}

// slugify lowercases a genre name into a safe file name fragment.
func slugify(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '_'
	}, s)
	for strings.Contains(mapped, "__") {
		mapped = strings.ReplaceAll(mapped, "__", "_")
	}
	mapped = strings.Trim(mapped, "_")
	if mapped == "" {
		return "genre"
	}
	return mapped
}

// renderPNG writes one chart image under outDir and returns its path.
func renderPNG(outDir, filename string, render func(chart.RendererProvider, io.Writer) error) (string, error) {
	path := filepath.Join(outDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating chart file %s: %w", filename, err)
	}

	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering chart %s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing chart file %s: %w", filename, err)
	}
	return path, nil
}
