package models

import (
	"encoding/json"
	"fmt"
)

// Rating is an optional 0-5 star value. The zero value is absent.
// Absent ratings are excluded from every statistical reduction; they are
// never folded in as zero.
type Rating struct {
	Value   float64
	Present bool
}

// SomeRating returns a present rating with the given value.
func SomeRating(v float64) Rating {
	return Rating{Value: v, Present: true}
}

// NoRating returns an absent rating.
func NoRating() Rating {
	return Rating{}
}

// MarshalJSON encodes a present rating as a number and an absent one as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Present {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a number or null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rating{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("rating must be a number or null: %w", err)
	}
	*r = Rating{Value: v, Present: true}
	return nil
}

func (r Rating) String() string {
	if !r.Present {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// GameRecord is one row of the dataset after field coercion.
type GameRecord struct {
	Title       string   `json:"title"`
	RawPlays    string   `json:"plays_raw,omitempty"`
	Plays       int64    `json:"plays"`
	Rating      Rating   `json:"rating"`
	Genres      []string `json:"genres,omitempty"`
	Platforms   string   `json:"platforms,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
}
