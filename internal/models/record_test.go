package models

import (
	"encoding/json"
	"testing"
)

func TestRating_JSON(t *testing.T) {
	present, err := json.Marshal(SomeRating(4.5))
	if err != nil {
		t.Fatalf("Failed to marshal present rating: %v", err)
	}
	if string(present) != "4.5" {
		t.Errorf("Expected '4.5', got '%s'", present)
	}

	absent, err := json.Marshal(NoRating())
	if err != nil {
		t.Fatalf("Failed to marshal absent rating: %v", err)
	}
	if string(absent) != "null" {
		t.Errorf("Absent rating must encode as null, got '%s'", absent)
	}

	var r Rating
	if err := json.Unmarshal([]byte("null"), &r); err != nil {
		t.Fatalf("Failed to unmarshal null: %v", err)
	}
	if r.Present {
		t.Error("null must decode as absent")
	}

	if err := json.Unmarshal([]byte("3.25"), &r); err != nil {
		t.Fatalf("Failed to unmarshal number: %v", err)
	}
	if !r.Present || r.Value != 3.25 {
		t.Errorf("Expected present 3.25, got %+v", r)
	}

	if err := json.Unmarshal([]byte(`"high"`), &r); err == nil {
		t.Error("Expected error for non-numeric rating")
	}
}

func TestRating_String(t *testing.T) {
	if s := SomeRating(4.5).String(); s != "4.50" {
		t.Errorf("Expected '4.50', got '%s'", s)
	}
	if s := NoRating().String(); s != "n/a" {
		t.Errorf("Expected 'n/a', got '%s'", s)
	}
}

func TestResults_TopGenreNames(t *testing.T) {
	r := &Results{TopGenres: []GenrePlays{
		{Genre: "Adventure", TotalPlays: 100},
		{Genre: "RPG", TotalPlays: 50},
	}}
	names := r.TopGenreNames()
	if len(names) != 2 || names[0] != "Adventure" || names[1] != "RPG" {
		t.Errorf("Expected ranked genre names, got %v", names)
	}
}
