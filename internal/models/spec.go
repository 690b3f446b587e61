package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ArtifactKind identifies the type of artifact a run produces
// (e.g. text_report, top_genres_chart).
type ArtifactKind string

const (
	ArtifactTextReport     ArtifactKind = "text_report"
	ArtifactMarkdownReport ArtifactKind = "markdown_report"
	ArtifactMostPlayed     ArtifactKind = "most_played_chart"
	ArtifactTopGenres      ArtifactKind = "top_genres_chart"
	ArtifactRatings        ArtifactKind = "ratings_chart"
	ArtifactCombined       ArtifactKind = "combined_chart"
	ArtifactTopGames       ArtifactKind = "top_games_charts"
)

// KnownArtifactKinds lists every artifact kind the renderer registry accepts.
func KnownArtifactKinds() []ArtifactKind {
	return []ArtifactKind{
		ArtifactTextReport,
		ArtifactMarkdownReport,
		ArtifactMostPlayed,
		ArtifactTopGenres,
		ArtifactRatings,
		ArtifactCombined,
		ArtifactTopGames,
	}
}

// Defaults applied when the spec file leaves the corresponding field unset.
const (
	DefaultTopGenres        = 20
	DefaultTopGamesGenres   = 6
	DefaultTopGamesPerGenre = 5
	DefaultWorkers          = 4
	DefaultOutputDir        = "output"
)

// AnalysisSpec represents a complete analysis run specification
type AnalysisSpec struct {
	SpecIdentity `yaml:",inline"`
	Version      string           `yaml:"version,omitempty"`
	Dataset      DatasetConfig    `yaml:"dataset"`
	Analysis     AnalysisConfig   `yaml:"analysis,omitempty"`
	Output       OutputConfig     `yaml:"output,omitempty"`
	Artifacts    []ArtifactConfig `yaml:"artifacts,omitempty"`
}

type SpecIdentity struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// DatasetConfig points at the tabular input
type DatasetConfig struct {
	Path string `yaml:"path" json:"path"`
	// Rows optionally restricts the load to a 1-based inclusive row range.
	Rows [2]int `yaml:"rows,omitempty" json:"rows,omitempty"`
}

// AnalysisConfig controls aggregation behavior
type AnalysisConfig struct {
	TopGenres int            `yaml:"top_genres,omitempty" json:"top_genres,omitempty"`
	TopGames  TopGamesConfig `yaml:"top_games,omitempty" json:"top_games,omitempty"`
	Parallel  bool           `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	Workers   int            `yaml:"max_workers,omitempty" json:"workers,omitempty"`
}

// TopGamesConfig controls the optional top-games-per-genre analysis
type TopGamesConfig struct {
	Enabled  bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Genres   int  `yaml:"genres,omitempty" json:"genres,omitempty"`
	PerGenre int  `yaml:"per_genre,omitempty" json:"per_genre,omitempty"`
}

// OutputConfig controls where artifacts land
type OutputConfig struct {
	Dir     string `yaml:"dir,omitempty" json:"dir,omitempty"`
	Results string `yaml:"results,omitempty" json:"results,omitempty"`
}

// ArtifactConfig defines one report or chart artifact
type ArtifactConfig struct {
	Kind       ArtifactKind   `yaml:"type" json:"kind"`
	Identifier string         `yaml:"name,omitempty" json:"identifier,omitempty"`
	Parameters map[string]any `yaml:"config,omitempty" json:"parameters,omitempty"`
}

// LoadAnalysisSpec loads a spec from a YAML file
func LoadAnalysisSpec(path string) (*AnalysisSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec AnalysisSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	spec.applyDefaults()

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

func (s *AnalysisSpec) applyDefaults() {
	if s.Analysis.TopGenres == 0 {
		s.Analysis.TopGenres = DefaultTopGenres
	}
	if s.Analysis.TopGames.Genres == 0 {
		s.Analysis.TopGames.Genres = DefaultTopGamesGenres
	}
	if s.Analysis.TopGames.PerGenre == 0 {
		s.Analysis.TopGames.PerGenre = DefaultTopGamesPerGenre
	}
	if s.Analysis.Workers == 0 {
		s.Analysis.Workers = DefaultWorkers
	}
	if s.Output.Dir == "" {
		s.Output.Dir = DefaultOutputDir
	}
}

// Validate checks that the spec is valid
func (s *AnalysisSpec) Validate() error {
	if s.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	if s.Analysis.TopGenres < 1 {
		return fmt.Errorf("top_genres must be at least 1, got %d", s.Analysis.TopGenres)
	}
	if s.Analysis.TopGames.Enabled {
		if s.Analysis.TopGames.Genres < 1 {
			return fmt.Errorf("top_games.genres must be at least 1, got %d", s.Analysis.TopGames.Genres)
		}
		if s.Analysis.TopGames.PerGenre < 1 {
			return fmt.Errorf("top_games.per_genre must be at least 1, got %d", s.Analysis.TopGames.PerGenre)
		}
	}
	if s.Analysis.Workers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", s.Analysis.Workers)
	}
	if rows := s.Dataset.Rows; rows != [2]int{} {
		if rows[0] < 1 || rows[1] < rows[0] {
			return fmt.Errorf("dataset.rows must be a 1-based inclusive range, got [%d, %d]", rows[0], rows[1])
		}
	}
	for _, a := range s.Artifacts {
		if !knownKind(a.Kind) {
			return fmt.Errorf("unknown artifact type %q", a.Kind)
		}
	}
	return nil
}

func knownKind(kind ArtifactKind) bool {
	for _, k := range KnownArtifactKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// ResolveDatasetPath resolves the configured dataset path against the
// directory holding the spec file. Absolute paths and URLs pass through.
func (s *AnalysisSpec) ResolveDatasetPath(baseDir string) string {
	p := s.Dataset.Path
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, "://") {
		return p
	}
	return filepath.Join(baseDir, p)
}
