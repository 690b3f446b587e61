// Package aggregate computes the run's analyses over the coerced records.
// Every function is deterministic: identical input ordering produces
// identical output, on the sequential and the parallel path alike.
package aggregate

import (
	"errors"
	"sort"

	"github.com/gametally/gametally/internal/genres"
	"github.com/gametally/gametally/internal/models"
	"github.com/gametally/gametally/internal/stats"
)

var (
	// ErrEmptyDataset reports that an analysis needs at least one record.
	ErrEmptyDataset = errors.New("aggregate: empty dataset")

	// ErrNoRatings reports that every rating in the dataset is absent, so
	// the rating statistics are undefined.
	ErrNoRatings = errors.New("aggregate: no present ratings in dataset")
)

// MostPlayed returns the record with the highest play count. The first
// record in dataset order wins ties.
func MostPlayed(records []models.GameRecord) (models.GameRecord, error) {
	if len(records) == 0 {
		return models.GameRecord{}, ErrEmptyDataset
	}
	best := records[0]
	for _, rec := range records[1:] {
		if rec.Plays > best.Plays {
			best = rec
		}
	}
	return best, nil
}

// TopGenresByPlays ranks genres by total plays, counting a record's full
// play count once for each genre it carries. Ties break by genre name
// ascending and the result is truncated to n.
func TopGenresByPlays(records []models.GameRecord, n int) []models.GenrePlays {
	return rankGenres(sumPlaysByGenre(records), n)
}

func sumPlaysByGenre(records []models.GameRecord) map[string]int64 {
	totals := make(map[string]int64)
	for _, rec := range records {
		for _, g := range rec.Genres {
			totals[g] += rec.Plays
		}
	}
	return totals
}

func rankGenres(totals map[string]int64, n int) []models.GenrePlays {
	if n <= 0 {
		return nil
	}
	ranked := make([]models.GenrePlays, 0, len(totals))
	for g, total := range totals {
		ranked = append(ranked, models.GenrePlays{Genre: g, TotalPlays: total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalPlays != ranked[j].TotalPlays {
			return ranked[i].TotalPlays > ranked[j].TotalPlays
		}
		return ranked[i].Genre < ranked[j].Genre
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// RatingSummary computes the average present rating for each genre in the
// given order. Genres whose records are all unrated are omitted; GameCount
// still counts every record tagged with the genre, rated or not. The result
// is sorted by average descending, preserving the input order among exact
// ties.
func RatingSummary(genreSet []string, ix *genres.Index) []models.GenreRating {
	summary := make([]models.GenreRating, 0, len(genreSet))
	for _, g := range genreSet {
		recs := ix.RecordsContaining(g)
		var ratings []float64
		for _, rec := range recs {
			if rec.Rating.Present {
				ratings = append(ratings, rec.Rating.Value)
			}
		}
		if len(ratings) == 0 {
			continue
		}
		summary = append(summary, models.GenreRating{
			Genre:         g,
			AverageRating: stats.Mean(ratings),
			GameCount:     len(recs),
		})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].AverageRating > summary[j].AverageRating
	})
	return summary
}

// TopGamesForGenre returns up to n of the genre's records, best rating
// first. Unrated records sort below every rated one; ties keep dataset
// order.
func TopGamesForGenre(ix *genres.Index, genre string, n int) []models.GameRecord {
	if n <= 0 {
		return nil
	}
	recs := ix.RecordsContaining(genre)
	sorted := make([]models.GameRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Rating, sorted[j].Rating
		if ri.Present != rj.Present {
			return ri.Present
		}
		return ri.Value > rj.Value
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TopGamesByGenres runs the top-games analysis over the leading nGenres of
// the ranked genres: the nGames best-rated records for each, plus the
// flattened combined view in genre-major order.
func TopGamesByGenres(ix *genres.Index, ranked []models.GenrePlays, nGenres, nGames int) *models.TopGames {
	if nGenres <= 0 {
		ranked = nil
	} else if nGenres < len(ranked) {
		ranked = ranked[:nGenres]
	}

	top := &models.TopGames{
		ByGenre: make(map[string][]models.GameRecord, len(ranked)),
	}
	for _, g := range ranked {
		games := TopGamesForGenre(ix, g.Genre, nGames)
		top.Genres = append(top.Genres, g.Genre)
		top.ByGenre[g.Genre] = games
		for _, game := range games {
			top.Combined = append(top.Combined, models.GenreGame{Genre: g.Genre, Game: game})
		}
	}
	return top
}

// Summarize computes the dataset-wide statistics. The rating figures cover
// present ratings only; a dataset with no present ratings at all has no
// defined rating statistics and fails.
func Summarize(records []models.GameRecord, ix *genres.Index) (models.SummaryStats, error) {
	if len(records) == 0 {
		return models.SummaryStats{}, ErrEmptyDataset
	}

	var totalPlays int64
	var ratings []float64
	for _, rec := range records {
		totalPlays += rec.Plays
		if rec.Rating.Present {
			ratings = append(ratings, rec.Rating.Value)
		}
	}
	if len(ratings) == 0 {
		return models.SummaryStats{}, ErrNoRatings
	}

	return models.SummaryStats{
		TotalGames:    len(records),
		TotalPlays:    totalPlays,
		AverageRating: stats.Mean(ratings),
		HighestRating: stats.Max(ratings),
		LowestRating:  stats.Min(ratings),
		UniqueGenres:  ix.Distinct(),
	}, nil
}
