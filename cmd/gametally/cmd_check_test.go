package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_ReadySpec(t *testing.T) {
	specPath, _ := createTestAnalysis(t)

	var buf bytes.Buffer
	cmd := newCheckCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{specPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "ANALYSIS CHECK")
	assert.Contains(t, output, "✓ schema valid")
	assert.Contains(t, output, "✓ spec loads cleanly")
	assert.Contains(t, output, "✓ dataset readable")
	assert.Contains(t, output, "✓ required columns present")
	assert.Contains(t, output, "Records:")
	assert.Contains(t, output, "Ready to run: gametally run "+specPath)
}

func TestCheckCommand_MissingSpec(t *testing.T) {
	cmd := newCheckCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "absent.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no analysis spec found")
}

func TestCheckCommand_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	spec := `name: dangling
dataset:
  path: gone.csv
`
	specPath := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	var buf bytes.Buffer
	cmd := newCheckCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{specPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready to run")

	output := buf.String()
	assert.Contains(t, output, "✗ dataset:")
	assert.Contains(t, output, "Fix the findings above")
}

func TestCheckCommand_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.csv"),
		[]byte("Name,Count\nX,1\n"), 0o644))

	spec := `name: wrong-columns
dataset:
  path: games.csv
`
	specPath := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	var buf bytes.Buffer
	cmd := newCheckCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{specPath})

	err := cmd.Execute()
	require.Error(t, err)

	output := buf.String()
	assert.Contains(t, output, "✗ missing columns:")
	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Plays")
}

func TestCheckCommand_SchemaFindings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.csv"), []byte(testCSV), 0o644))

	// No name: the schema requires one, but the semantic load tolerates it.
	spec := `dataset:
  path: games.csv
`
	specPath := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	var buf bytes.Buffer
	cmd := newCheckCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{specPath})

	err := cmd.Execute()
	require.Error(t, err)

	output := buf.String()
	assert.Contains(t, output, "✗ schema:")
	assert.Contains(t, output, "✓ spec loads cleanly")
}

func TestCheckCommand_InvalidSpecValues(t *testing.T) {
	dir := t.TempDir()
	spec := `name: bad-values
dataset:
  path: games.csv
analysis:
  top_genres: -1
`
	specPath := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	var buf bytes.Buffer
	cmd := newCheckCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{specPath})

	err := cmd.Execute()
	require.Error(t, err)

	output := buf.String()
	assert.Contains(t, output, "✗ spec:")
	assert.Contains(t, output, "top_genres")
}

func TestCheckCommand_InvalidFormat(t *testing.T) {
	specPath, _ := createTestAnalysis(t)

	cmd := newCheckCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{specPath, "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCheckCommand_JSONFormat(t *testing.T) {
	specPath, _ := createTestAnalysis(t)

	var buf bytes.Buffer
	cmd := newCheckCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{specPath, "--format", "json"})

	require.NoError(t, cmd.Execute())

	var report map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, true, report["ready"])
	assert.Equal(t, "test-analysis", report["specName"])

	schema, ok := report["schema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, schema["valid"])

	datasetInfo, ok := report["dataset"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), datasetInfo["records"])
	assert.Equal(t, float64(6), datasetInfo["columns"])
}

func TestCheckCommand_JSONNotReady(t *testing.T) {
	dir := t.TempDir()
	spec := `name: dangling
dataset:
  path: gone.csv
`
	specPath := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	var buf bytes.Buffer
	cmd := newCheckCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{specPath, "--format", "json"})

	// The JSON report is still emitted before the non-zero exit.
	err := cmd.Execute()
	require.Error(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, false, report["ready"])

	datasetInfo, ok := report["dataset"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, datasetInfo["error"])
}

func TestCheckCommand_TooManyArgs(t *testing.T) {
	cmd := newCheckCommand()
	cmd.SetArgs([]string{"a.yaml", "b.yaml"})
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc  ", padRight("abc", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5))
	// Wide runes count by display width, not rune count.
	assert.Equal(t, "ジャンル  ", padRight("ジャンル", 10))
}

func TestRootCommand_HasCheckSubcommand(t *testing.T) {
	root := newRootCommand()
	found := false
	for _, c := range root.Commands() {
		if c.Name() == "check" {
			found = true
			break
		}
	}
	assert.True(t, found, "root command should have 'check' subcommand")
}
