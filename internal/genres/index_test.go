package genres

import (
	"reflect"
	"testing"

	"github.com/gametally/gametally/internal/models"
)

func testRecords() []models.GameRecord {
	return []models.GameRecord{
		{Title: "A", Plays: 10000, Rating: models.SomeRating(4.5), Genres: []string{"RPG"}},
		{Title: "B", Plays: 5000, Rating: models.SomeRating(3.0), Genres: []string{"RPG", "Action"}},
		{Title: "C", Plays: 20000, Genres: []string{"Action"}},
		{Title: "D", Plays: 1, Genres: nil},
	}
}

func TestNewIndex(t *testing.T) {
	ix := NewIndex(testRecords())

	if got := ix.Distinct(); got != 2 {
		t.Errorf("Distinct() = %d, want 2", got)
	}
	if got := ix.Genres(); !reflect.DeepEqual(got, []string{"Action", "RPG"}) {
		t.Errorf("Genres() = %v, want [Action RPG]", got)
	}
}

func TestIndex_RecordsContaining(t *testing.T) {
	ix := NewIndex(testRecords())

	rpg := ix.RecordsContaining("RPG")
	if len(rpg) != 2 {
		t.Fatalf("RPG records = %d, want 2", len(rpg))
	}
	if rpg[0].Title != "A" || rpg[1].Title != "B" {
		t.Errorf("RPG records out of dataset order: %s, %s", rpg[0].Title, rpg[1].Title)
	}

	action := ix.RecordsContaining("Action")
	if len(action) != 2 || action[0].Title != "B" || action[1].Title != "C" {
		t.Errorf("Action records wrong: %+v", action)
	}

	if got := ix.RecordsContaining("Simulation"); got != nil {
		t.Errorf("unknown genre should yield nil, got %v", got)
	}
}

func TestIndex_Count(t *testing.T) {
	ix := NewIndex(testRecords())

	if got := ix.Count("Action"); got != 2 {
		t.Errorf("Count(Action) = %d, want 2", got)
	}
	if got := ix.Count("Simulation"); got != 0 {
		t.Errorf("Count(Simulation) = %d, want 0", got)
	}
}

func TestIndex_EmptyRecords(t *testing.T) {
	ix := NewIndex(nil)

	if got := ix.Distinct(); got != 0 {
		t.Errorf("Distinct() = %d, want 0", got)
	}
	if got := ix.Genres(); len(got) != 0 {
		t.Errorf("Genres() = %v, want empty", got)
	}
}

func TestIndex_DuplicateGenreInRecord(t *testing.T) {
	ix := NewIndex([]models.GameRecord{
		{Title: "A", Genres: []string{"RPG", "RPG"}},
	})

	if got := ix.Count("RPG"); got != 2 {
		t.Errorf("Count(RPG) = %d, want 2 (per occurrence)", got)
	}
	if got := ix.Distinct(); got != 1 {
		t.Errorf("Distinct() = %d, want 1", got)
	}
}
