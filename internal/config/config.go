// Package config carries the resolved settings for one analysis run: the
// loaded spec plus command-line overrides.
package config

import "github.com/gametally/gametally/internal/models"

// RunConfig bundles the analysis spec with run-scoped overrides. Construct
// with NewRunConfig; the zero value is not meaningful.
type RunConfig struct {
	spec        *models.AnalysisSpec
	specDir     string
	datasetPath string
	outputDir   string
	resultsPath string
	logPath     string
	verbose     bool
}

// Option mutates a RunConfig during construction.
type Option func(*RunConfig)

// NewRunConfig creates a RunConfig for the given spec. Options apply in
// order; passing a nil option panics.
func NewRunConfig(spec *models.AnalysisSpec, opts ...Option) *RunConfig {
	cfg := &RunConfig{spec: spec}
	for _, opt := range opts {
		if opt == nil {
			panic("config: nil Option")
		}
		opt(cfg)
	}
	return cfg
}

// WithSpecDir records the directory the spec file was loaded from.
// Relative dataset paths resolve against it.
func WithSpecDir(dir string) Option {
	return func(c *RunConfig) { c.specDir = dir }
}

// WithDatasetPath overrides the spec's dataset path.
func WithDatasetPath(path string) Option {
	return func(c *RunConfig) { c.datasetPath = path }
}

// WithOutputDir overrides the spec's artifact directory.
func WithOutputDir(dir string) Option {
	return func(c *RunConfig) { c.outputDir = dir }
}

// WithResultsPath overrides where the results JSON lands.
func WithResultsPath(path string) Option {
	return func(c *RunConfig) { c.resultsPath = path }
}

// WithLogPath mirrors the run log to the given file.
func WithLogPath(path string) Option {
	return func(c *RunConfig) { c.logPath = path }
}

// WithVerbose toggles per-event progress output.
func WithVerbose(v bool) Option {
	return func(c *RunConfig) { c.verbose = v }
}

// Spec returns the loaded analysis spec. It may be nil in tests.
func (c *RunConfig) Spec() *models.AnalysisSpec { return c.spec }

// SpecDir returns the directory the spec file was loaded from.
func (c *RunConfig) SpecDir() string { return c.specDir }

// DatasetPath resolves the dataset location: the command-line override
// wins, then the spec's path resolved against the spec directory.
func (c *RunConfig) DatasetPath() string {
	if c.datasetPath != "" {
		return c.datasetPath
	}
	if c.spec == nil {
		return ""
	}
	return c.spec.ResolveDatasetPath(c.specDir)
}

// OutputDir resolves the artifact directory: override, then spec, then the
// default.
func (c *RunConfig) OutputDir() string {
	if c.outputDir != "" {
		return c.outputDir
	}
	if c.spec != nil && c.spec.Output.Dir != "" {
		return c.spec.Output.Dir
	}
	return models.DefaultOutputDir
}

// ResultsPath resolves where the results JSON is written. Empty disables
// the write.
func (c *RunConfig) ResultsPath() string {
	if c.resultsPath != "" {
		return c.resultsPath
	}
	if c.spec == nil {
		return ""
	}
	return c.spec.Output.Results
}

// LogPath returns the log mirror path, if any.
func (c *RunConfig) LogPath() string { return c.logPath }

// Verbose reports whether per-event progress output is on.
func (c *RunConfig) Verbose() bool { return c.verbose }
