// Package dataset loads the tabular game export a run analyzes. Sources
// hide the transport (local file, gzipped file, Azure Blob); every source
// produces the same Table of raw string rows.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Column names the analyses rely on. Extra columns pass through untouched
// and are ignored downstream.
const (
	ColTitle       = "Title"
	ColPlays       = "Plays"
	ColRating      = "Rating"
	ColGenres      = "Genres"
	ColPlatforms   = "Platforms"
	ColReleaseDate = "Release_Date"
)

// RequiredColumns lists the columns a dataset must carry.
func RequiredColumns() []string {
	return []string{ColTitle, ColPlays, ColRating, ColGenres, ColPlatforms, ColReleaseDate}
}

// Row represents a single row with column name to value mapping.
type Row map[string]string

// Table is a parsed dataset: the header in file order plus every data row.
// A header-only file yields a Table with zero rows, which is not a load
// error; emptiness is judged later, by the aggregation.
type Table struct {
	Path    string
	Columns []string
	Rows    []Row
}

// MissingColumns reports which required columns the table lacks.
func (t *Table) MissingColumns() []string {
	have := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns() {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// readTable parses CSV content. The first row is treated as headers
// (column names).
func readTable(r io.Reader, path string) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("dataset: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)

	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return &Table{Path: path, Columns: headers, Rows: rows}, nil
}

// sliceRows applies an optional [start, end] row range (1-based, inclusive).
// Row 1 is the first data row after the header. The end clamps to the
// available rows; a start beyond them yields an empty table.
func (t *Table) sliceRows(rng [2]int) *Table {
	if rng == [2]int{} {
		return t
	}
	start, end := rng[0], rng[1]
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	if start > len(t.Rows) {
		t.Rows = []Row{}
		return t
	}
	t.Rows = t.Rows[start-1 : end]
	return t
}
