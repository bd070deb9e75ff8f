// Package config loads the YAML configuration for groupdiff.
//
// The file normally lives at .groupdiff/config.yaml inside a workspace, but
// can be overridden with the --config flag. Relative directories in the file
// are resolved against the directory holding the file. CLI flags always take
// precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	// BaselineDir holds the grouping outputs produced on the baseline revision,
	// one subdirectory per grouping configuration.
	BaselineDir string `yaml:"baseline_dir"`

	// CandidateDir mirrors BaselineDir for the candidate revision.
	CandidateDir string `yaml:"candidate_dir"`

	// OutputDir receives the variants.<config>.diff bundles.
	OutputDir string `yaml:"output_dir"`

	// GroupingConfig restricts the run to configurations whose name
	// contains this substring. Empty compares every configuration.
	GroupingConfig string `yaml:"grouping_config,omitempty"`

	// Jobs is the number of configurations compared concurrently.
	Jobs int `yaml:"jobs"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `yaml:"metrics_file,omitempty"`

	// HistoryFile is the JSONL run history. Empty disables history.
	HistoryFile string `yaml:"history_file"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		BaselineDir:  "baseline_outputs",
		CandidateDir: "new_outputs",
		OutputDir:    ".",
		Jobs:         1,
		LogLevel:     "info",
		HistoryFile:  "runs.jsonl",
	}
}

// Load reads a YAML config file on top of Defaults and validates it.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.BaselineDir == "" {
		return fmt.Errorf("baseline_dir must not be empty")
	}
	if c.CandidateDir == "" {
		return fmt.Errorf("candidate_dir must not be empty")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// ResolvePaths makes every relative path in c relative to base.
func (c *Config) ResolvePaths(base string) {
	for _, p := range []*string{&c.BaselineDir, &c.CandidateDir, &c.OutputDir, &c.MetricsFile, &c.HistoryFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
