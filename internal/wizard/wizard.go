package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/gametally/gametally/internal/models"
	"github.com/gametally/gametally/internal/scaffold"
)

// AnalysisSettings holds all fields collected during the interactive wizard.
type AnalysisSettings struct {
	Name        string
	Description string
	DatasetPath string
	TopGenres   int
	TopGames    bool
	Parallel    bool
	Artifacts   []string
	OutputDir   string
}

const analysisYAMLTemplate = `name: {{ .Name }}
{{- if .Description }}
description: {{ .Description }}
{{- end }}
version: "1.0"

dataset:
  path: {{ .DatasetPath }}

analysis:
  top_genres: {{ .TopGenres }}
{{- if .TopGames }}
  top_games:
    enabled: true
    genres: 6
    per_genre: 5
{{- end }}
{{- if .Parallel }}
  parallel: true
  max_workers: 4
{{- end }}

output:
  dir: {{ .OutputDir }}
  results: results.json
{{- if .Artifacts }}

artifacts:
{{- range .Artifacts }}
  - type: {{ . }}
{{- end }}
{{- end }}
`

// RunAnalysisWizard runs an interactive huh form to collect analysis settings.
// If initialName is non-empty, it pre-populates the name field.
func RunAnalysisWizard(in io.Reader, out io.Writer, initialName string) (*AnalysisSettings, error) {
	var (
		name         = initialName
		description  string
		datasetPath  string
		topGenresRaw = strconv.Itoa(models.DefaultTopGenres)
		topGames     bool
		parallel     bool
		artifacts    []string
		outputDir    = models.DefaultOutputDir
	)

	kinds := models.KnownArtifactKinds()
	kindOptions := make([]huh.Option[string], 0, len(kinds))
	for _, kind := range kinds {
		kindOptions = append(kindOptions, huh.NewOption(string(kind), string(kind)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Analysis name").
				Description("A short name for this analysis").
				Placeholder("my-library").
				Value(&name).
				Validate(func(s string) error {
					return scaffold.ValidateName(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Description").
				Description("What does this analysis cover? (optional)").
				Value(&description),
			huh.NewInput().
				Title("Dataset path").
				Description("CSV export of the game library").
				Placeholder("games.csv").
				Value(&datasetPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("dataset path is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Top genres").
				Description("How many genres to rank by total plays").
				Value(&topGenresRaw).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("Top games per genre").
				Description("Also chart the best rated games of each leading genre?").
				Value(&topGames),
			huh.NewConfirm().
				Title("Parallel aggregation").
				Description("Sum plays across worker goroutines (useful for large exports)").
				Value(&parallel),
			huh.NewMultiSelect[string]().
				Title("Artifacts").
				Description("Reports and charts to produce (select none for the full set)").
				Options(kindOptions...).
				Value(&artifacts),
			huh.NewInput().
				Title("Output directory").
				Value(&outputDir),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	topGenres, err := strconv.Atoi(strings.TrimSpace(topGenresRaw))
	if err != nil {
		return nil, fmt.Errorf("invalid top genres value %q: %w", topGenresRaw, err)
	}

	if strings.TrimSpace(outputDir) == "" {
		outputDir = models.DefaultOutputDir
	}

	return &AnalysisSettings{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		DatasetPath: strings.TrimSpace(datasetPath),
		TopGenres:   topGenres,
		TopGames:    topGames,
		Parallel:    parallel,
		Artifacts:   artifacts,
		OutputDir:   strings.TrimSpace(outputDir),
	}, nil
}

// GenerateAnalysisYAML renders an analysis.yaml from the given settings.
func GenerateAnalysisYAML(settings *AnalysisSettings) (string, error) {
	tmpl, err := template.New("analysisyaml").Parse(analysisYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, settings); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of at least 1")
	}
	return nil
}
