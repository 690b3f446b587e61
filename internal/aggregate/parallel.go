package aggregate

import (
	"golang.org/x/sync/errgroup"

	"github.com/gametally/gametally/internal/models"
)

// TopGenresByPlaysParallel computes the same ranking as TopGenresByPlays by
// sharding the records across workers goroutines, each building a partial
// sum over its shard, then merging. Addition commutes and the final ranking
// is totally ordered, so the result matches the sequential path exactly.
func TopGenresByPlaysParallel(records []models.GameRecord, n, workers int) []models.GenrePlays {
	if workers < 2 || len(records) < workers {
		return TopGenresByPlays(records, n)
	}

	partials := make([]map[string]int64, workers)
	chunk := (len(records) + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(records))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			partials[w] = sumPlaysByGenre(records[lo:hi])
			return nil
		})
	}
	// Shard workers have no failure mode; Wait only synchronizes.
	_ = g.Wait()

	totals := make(map[string]int64)
	for _, p := range partials {
		for genre, total := range p {
			totals[genre] += total
		}
	}
	return rankGenres(totals, n)
}
