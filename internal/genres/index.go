// Package genres maintains the genre membership index built once per run.
// Genre names are matched by exact string identity; no case folding or
// trimming happens here.
package genres

import (
	"sort"

	"github.com/gametally/gametally/internal/models"
)

// Index maps each genre name to the records tagged with it.
type Index struct {
	records []models.GameRecord
	byGenre map[string][]int
	names   []string
}

// NewIndex builds the index, walking every record's genre list once.
// Records with an empty genre list land in no bucket; they still count in
// dataset-wide statistics, just under no genre. A genre repeated within a
// single record's list counts per occurrence.
func NewIndex(records []models.GameRecord) *Index {
	ix := &Index{
		records: records,
		byGenre: make(map[string][]int),
	}
	for i, rec := range records {
		for _, g := range rec.Genres {
			ix.byGenre[g] = append(ix.byGenre[g], i)
		}
	}
	ix.names = make([]string, 0, len(ix.byGenre))
	for g := range ix.byGenre {
		ix.names = append(ix.names, g)
	}
	sort.Strings(ix.names)
	return ix
}

// RecordsContaining returns the records tagged with the genre, in dataset
// order. Unknown genres yield nil.
func (ix *Index) RecordsContaining(genre string) []models.GameRecord {
	idxs, ok := ix.byGenre[genre]
	if !ok {
		return nil
	}
	out := make([]models.GameRecord, len(idxs))
	for i, idx := range idxs {
		out[i] = ix.records[idx]
	}
	return out
}

// Genres returns every distinct genre, sorted ascending.
func (ix *Index) Genres() []string {
	out := make([]string, len(ix.names))
	copy(out, ix.names)
	return out
}

// Distinct returns the number of distinct genres.
func (ix *Index) Distinct() int {
	return len(ix.byGenre)
}

// Count returns how many records carry the genre.
func (ix *Index) Count(genre string) int {
	return len(ix.byGenre[genre])
}
