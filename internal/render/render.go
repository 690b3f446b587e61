// Package render turns analysis results into report and chart artifacts.
//
// Renderers are created by artifact kind through [Create], matching the
// artifact entries of an analysis spec. Each renderer writes its files under
// the run's output directory and returns the paths it produced.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"

	"github.com/gametally/gametally/internal/models"
)

// Renderer is the interface for all artifact producers.
type Renderer interface {
	// Name returns the artifact name used in results and log lines.
	Name() string

	// Kind returns the artifact kind this renderer implements.
	Kind() models.ArtifactKind

	// Render writes the artifact files under outDir and returns their paths.
	Render(ctx context.Context, results *models.Results, outDir string) ([]string, error)
}

// Create builds a renderer for one artifact entry of an analysis spec.
// An empty identifier falls back to the kind name.
func Create(kind models.ArtifactKind, identifier string, params map[string]any) (Renderer, error) {
	if identifier == "" {
		identifier = string(kind)
	}

	switch kind {
	case models.ArtifactTextReport:
		var v struct {
			Filename string
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		return NewTextReport(identifier, v.Filename)
	case models.ArtifactMarkdownReport:
		var v struct {
			Filename string
			HTML     bool `mapstructure:"html"`
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		return NewMarkdownReport(identifier, v.Filename, v.HTML)
	case models.ArtifactMostPlayed:
		var v struct {
			Filename string
			Width    int
			Height   int
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		return NewMostPlayedChart(identifier, ChartArgs{
			Filename: v.Filename,
			Width:    v.Width,
			Height:   v.Height,
		})
	case models.ArtifactTopGenres:
		var v struct {
			Filename string
			Width    int
			Height   int
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		return NewTopGenresChart(identifier, ChartArgs{
			Filename: v.Filename,
			Width:    v.Width,
			Height:   v.Height,
		})
	case models.ArtifactRatings:
		var v struct {
			Filename string
			Width    int
			Height   int
			Top      int
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		return NewRatingsChart(identifier, ChartArgs{
			Filename: v.Filename,
			Width:    v.Width,
			Height:   v.Height,
		}, v.Top)
	case models.ArtifactCombined:
		var v struct {
			Filename string
			Width    int
			Height   int
			Top      int
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		return NewCombinedChart(identifier, ChartArgs{
			Filename: v.Filename,
			Width:    v.Width,
			Height:   v.Height,
		}, v.Top)
	case models.ArtifactTopGames:
		var v struct {
			Prefix   string
			Width    int
			Height   int
			Combined *bool
		}

		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}

		combined := true
		if v.Combined != nil {
			combined = *v.Combined
		}

		return NewTopGamesCharts(identifier, v.Prefix, combined, v.Width, v.Height)
	default:
		return nil, fmt.Errorf("'%s' is not a valid artifact type", kind)
	}
}

// DefaultSet returns one renderer of every kind with default options, so a
// spec that lists no artifacts still produces the full report set.
func DefaultSet() ([]Renderer, error) {
	kinds := models.KnownArtifactKinds()

	renderers := make([]Renderer, 0, len(kinds))
	for _, kind := range kinds {
		r, err := Create(kind, "", nil)
		if err != nil {
			return nil, err
		}
		renderers = append(renderers, r)
	}

	return renderers, nil
}

// writeArtifact writes one artifact file under outDir and returns its path.
func writeArtifact(outDir, filename string, data []byte) (string, error) {
	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", filename, err)
	}
	return path, nil
}
