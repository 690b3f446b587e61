package models

import "time"

// Status represents the outcome status of a pipeline run.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Results represents the complete product of an analysis run. It is what
// renderers consume and what `run -o` serializes.
type Results struct {
	RunID        string            `json:"run_id"`
	SpecName     string            `json:"spec_name,omitempty"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Dataset      DatasetInfo       `json:"dataset"`
	MostPlayed   GameRecord        `json:"most_played"`
	TopGenres    []GenrePlays      `json:"top_genres"`
	GenreRatings []GenreRating     `json:"genre_ratings"`
	Summary      SummaryStats      `json:"summary"`
	TopGames     *TopGames         `json:"top_games,omitempty"`
	Artifacts    map[string]string `json:"artifacts,omitempty"`
	Execution    Execution         `json:"execution"`
}

// DatasetInfo describes the table the run was computed from.
type DatasetInfo struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
	Columns int    `json:"columns,omitempty"`
}

// GenrePlays is one row of the top-genres ranking.
type GenrePlays struct {
	Genre      string `json:"genre"`
	TotalPlays int64  `json:"total_plays"`
}

// GenreRating is one row of the per-genre rating summary. GameCount counts
// every record tagged with the genre, rated or not; AverageRating is the
// mean over present ratings only.
type GenreRating struct {
	Genre         string  `json:"genre"`
	AverageRating float64 `json:"average_rating"`
	GameCount     int     `json:"game_count"`
}

// SummaryStats holds the dataset-wide aggregate figures. The rating fields
// are computed over present ratings only.
type SummaryStats struct {
	TotalGames    int     `json:"total_games"`
	TotalPlays    int64   `json:"total_plays"`
	AverageRating float64 `json:"average_rating"`
	HighestRating float64 `json:"highest_rating"`
	LowestRating  float64 `json:"lowest_rating"`
	UniqueGenres  int     `json:"unique_genres"`
}

// TopGames holds the optional top-games-per-genre analysis. Genres preserves
// the ranked order; Combined is the flattened genre-major view.
type TopGames struct {
	Genres   []string                `json:"genres"`
	ByGenre  map[string][]GameRecord `json:"by_genre"`
	Combined []GenreGame             `json:"combined"`
}

// GenreGame is one entry of the combined top-games view.
type GenreGame struct {
	Genre string     `json:"genre"`
	Game  GameRecord `json:"game"`
}

// Execution records how the run went. It is stamped on both success and
// failure paths before the error propagates.
type Execution struct {
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	Status     Status    `json:"status"`
	ErrorMsg   string    `json:"error_msg,omitempty"`
}

// TopGenreNames returns the ranked genre names in order.
func (r *Results) TopGenreNames() []string {
	names := make([]string, len(r.TopGenres))
	for i, g := range r.TopGenres {
		names[i] = g.Genre
	}
	return names
}
