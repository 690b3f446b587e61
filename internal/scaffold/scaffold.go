// Package scaffold provides the starter files written by gametally init:
// a commented analysis spec and a small sample dataset.
package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateName rejects names with path-traversal characters or empty names.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("analysis name must not be empty")
	}
	cleaned := filepath.Clean(name)
	if cleaned == ".." || strings.Contains(cleaned, "/") || strings.Contains(cleaned, "\\") {
		return fmt.Errorf("analysis name %q contains invalid path characters", name)
	}
	return nil
}

// AnalysisYAML returns a default analysis.yaml for the given name and dataset.
func AnalysisYAML(name, datasetPath string) string {
	return fmt.Sprintf(`name: %s
description: Play-count and rating analysis for a game library export.
version: "1.0"

dataset:
  # Path to the CSV export, relative to this file. A .csv.gz file or an
  # https:// blob URL works too.
  path: %s

analysis:
  # How many genres to rank by total plays.
  top_genres: 20
  # Per-genre top game charts, disabled until you want them.
  top_games:
    enabled: false
    genres: 6
    per_genre: 5
  # Spread the genre sums across worker goroutines.
  parallel: false
  max_workers: 4

output:
  dir: output
  results: results.json

artifacts:
  - type: text_report
  - type: markdown_report
    config:
      html: true
  - type: most_played_chart
  - type: top_genres_chart
  - type: ratings_chart
  - type: combined_chart
`, name, datasetPath)
}

// SampleCSV returns a small game library to experiment with. It covers the
// quirks a real export has: thousands suffixes, a fractional count and a
// game nobody rated yet.
func SampleCSV() string {
	return `Title,Plays,Rating,Genres,Platforms,Release_Date
Elden Ring,21K,4.5,"['Adventure', 'RPG']","PC, PS5, Xbox Series X","Feb 25, 2022"
Hades,18K,4.3,"['Adventure', 'Indie', 'RPG']","PC, Switch","Sep 17, 2020"
Portal 2,16K,4.6,"['Adventure', 'Puzzle', 'Shooter']","PC, PS3, Xbox 360","Apr 18, 2011"
Stardew Valley,15K,4.4,"['Indie', 'RPG', 'Simulator']","PC, Switch, Mobile","Feb 26, 2016"
Hollow Knight,14K,4.4,"['Adventure', 'Indie', 'Platform']","PC, Switch","Feb 24, 2017"
Celeste,9.7K,4.2,"['Adventure', 'Indie', 'Platform']","PC, Switch","Jan 25, 2018"
Factorio,7.1K,4.3,"['Simulator', 'Strategy']",PC,"Aug 14, 2020"
Unheard Echoes,512,,"['Adventure']",PC,"Jun 01, 2023"
`
}
