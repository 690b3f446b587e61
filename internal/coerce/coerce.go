// Package coerce converts raw dataset fields into typed values. The export
// is noisy, so every parser here is total: malformed input falls back to a
// neutral value instead of failing the run.
package coerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/gametally/gametally/internal/dataset"
	"github.com/gametally/gametally/internal/models"
)

// ParsePlays converts the raw play-count field to a count. The dataset
// abbreviates thousands with a trailing K ("21K" means 21000, "3.9K" means
// 3900). Anything unparseable, including negative values, coerces to 0.
func ParsePlays(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	var n int64
	if strings.Contains(s, "K") {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, "K", ""), 64)
		if err != nil {
			return 0
		}
		p := f * 1000
		if math.IsNaN(p) || p < 0 || p >= math.MaxInt64 {
			return 0
		}
		n = int64(p)
	} else {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0
		}
		n = v
	}

	if n < 0 {
		return 0
	}
	return n
}

// ParseRating attempts numeric coercion of the rating field. Empty,
// non-numeric, and non-finite input all yield an absent rating; zero is a
// valid present rating.
func ParseRating(raw string) models.Rating {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.NoRating()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return models.NoRating()
	}
	return models.SomeRating(v)
}

// ParseGenreList parses the genres field, which holds a bracketed list
// literal such as "['Adventure', 'RPG']". Only a list of quoted strings is
// accepted; anything else yields nil. The field is data, not code, so this
// is a structured scan, never an evaluation.
func ParseGenreList(raw string) []string {
	genres, ok := scanListLiteral(strings.TrimSpace(raw))
	if !ok {
		return nil
	}
	return genres
}

// Record coerces one raw row into a GameRecord.
func Record(row dataset.Row) models.GameRecord {
	return models.GameRecord{
		Title:       row[dataset.ColTitle],
		RawPlays:    strings.TrimSpace(row[dataset.ColPlays]),
		Plays:       ParsePlays(row[dataset.ColPlays]),
		Rating:      ParseRating(row[dataset.ColRating]),
		Genres:      ParseGenreList(row[dataset.ColGenres]),
		Platforms:   row[dataset.ColPlatforms],
		ReleaseDate: row[dataset.ColReleaseDate],
	}
}

// Records coerces every row, preserving dataset order.
func Records(rows []dataset.Row) []models.GameRecord {
	records := make([]models.GameRecord, len(rows))
	for i, row := range rows {
		records[i] = Record(row)
	}
	return records
}

// scanListLiteral scans a complete list literal of single- or double-quoted
// strings. It reports false for anything else: a bare value, a list with
// non-string elements, trailing junk, or an unterminated string.
func scanListLiteral(s string) ([]string, bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}

	var out []string
	i, end := 1, len(s)-1
	skipSpace(s, &i, end)
	if i == end {
		return out, true
	}
	for {
		elem, next, ok := scanQuoted(s, i, end)
		if !ok {
			return nil, false
		}
		out = append(out, elem)
		i = next
		skipSpace(s, &i, end)
		if i == end {
			return out, true
		}
		if s[i] != ',' {
			return nil, false
		}
		i++
		skipSpace(s, &i, end)
		// trailing comma before the closing bracket
		if i == end {
			return out, true
		}
	}
}

// scanQuoted scans one quoted string starting at i and returns its value and
// the index just past the closing quote. Backslash escapes cover the quote
// characters, backslash, and the common control characters.
func scanQuoted(s string, i, end int) (string, int, bool) {
	q := s[i]
	if q != '\'' && q != '"' {
		return "", i, false
	}
	i++

	var sb strings.Builder
	for i < end {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 >= end {
				return "", i, false
			}
			switch e := s[i+1]; e {
			case '\\', '\'', '"':
				sb.WriteByte(e)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				return "", i, false
			}
			i += 2
		case c == q:
			return sb.String(), i + 1, true
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return "", i, false
}

func skipSpace(s string, i *int, end int) {
	for *i < end {
		switch s[*i] {
		case ' ', '\t', '\n', '\r':
			*i++
		default:
			return
		}
	}
}
