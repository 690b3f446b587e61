package scaffold

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple name", "my-library", false},
		{"with spaces", "summer catalog", false},
		{"empty", "", true},
		{"parent traversal", "..", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalysisYAML(t *testing.T) {
	out := AnalysisYAML("my-library", "exports/games.csv")

	assert.Contains(t, out, "name: my-library")
	assert.Contains(t, out, "path: exports/games.csv")
	assert.Contains(t, out, "top_genres: 20")
	assert.Contains(t, out, "type: text_report")
	assert.Contains(t, out, "results: results.json")
}

func TestSampleCSV_ParsesAsCSV(t *testing.T) {
	records, err := csv.NewReader(strings.NewReader(SampleCSV())).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(records), 1)

	header := records[0]
	assert.Equal(t, []string{"Title", "Plays", "Rating", "Genres", "Platforms", "Release_Date"}, header)

	for _, row := range records[1:] {
		assert.Len(t, row, len(header))
	}
}
