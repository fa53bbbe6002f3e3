// Package config provides configuration management for batch
// extraction runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoJobs              = errors.New("at least one job is required")
	ErrJobMissingDatafile  = errors.New("datafile is required")
	ErrJobNoExtractors     = errors.New("at least one extractor is required")
	ErrUnknownExtractor    = errors.New("unknown extractor")
	ErrNoEnabledJobs       = errors.New("at least one job must be enabled")
	ErrMissingOutputPath   = errors.New("output.base_path is required")
	ErrInvalidOutputFormat = errors.New("output.format must be 'csv'")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Extractors lists the extractor names a job may request.
var Extractors = []string{
	"compdat", "equil", "gruptree", "wcon", "faults", "satfunc", "summary",
}

// Config represents a complete batch configuration.
type Config struct {
	Batch BatchConfig `yaml:"batch"`
}

// BatchConfig contains the jobs and shared settings.
type BatchConfig struct {
	Output  OutputConfig  `yaml:"output"`
	Jobs    []JobConfig   `yaml:"jobs"`
	Logging LoggingConfig `yaml:"logging"`
}

// JobConfig represents one simulator case to extract from.
type JobConfig struct {
	Name       string   `yaml:"name"`
	Datafile   string   `yaml:"datafile"`
	Extractors []string `yaml:"extractors"`
	StartDate  string   `yaml:"start_date"`
	Enabled    bool     `yaml:"enabled"`
}

// OutputConfig defines where extracted CSV files land.
type OutputConfig struct {
	BasePath string `yaml:"base_path"`
	Format   string `yaml:"format"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Batch.Jobs) == 0 {
		return ErrNoJobs
	}

	known := make(map[string]bool, len(Extractors))
	for _, name := range Extractors {
		known[name] = true
	}

	enabledCount := 0

	for i, job := range c.Batch.Jobs {
		if job.Datafile == "" {
			return fmt.Errorf("%w: job[%d]", ErrJobMissingDatafile, i)
		}

		if len(job.Extractors) == 0 {
			return fmt.Errorf("%w: job[%d]", ErrJobNoExtractors, i)
		}

		for _, name := range job.Extractors {
			if !known[strings.ToLower(name)] {
				return fmt.Errorf("%w: %q in job[%d]", ErrUnknownExtractor, name, i)
			}
		}

		if job.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledJobs
	}

	if c.Batch.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	if c.Batch.Output.Format != "" && c.Batch.Output.Format != "csv" {
		return ErrInvalidOutputFormat
	}

	if c.Batch.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[c.Batch.Logging.Level] {
			return ErrInvalidLogLevel
		}
	}

	return nil
}

// EnabledJobs returns only enabled jobs.
func (c *Config) EnabledJobs() []JobConfig {
	var enabled []JobConfig

	for _, job := range c.Batch.Jobs {
		if job.Enabled {
			enabled = append(enabled, job)
		}
	}

	return enabled
}

// CaseName returns the job name, falling back to the datafile
// basename without extension.
func (j *JobConfig) CaseName() string {
	if j.Name != "" {
		return j.Name
	}

	base := filepath.Base(j.Datafile)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath builds the CSV path for one extractor of a job:
// {base_path}/{case}/{extractor}.csv.
func (c *Config) OutputPath(job *JobConfig, extractor string) string {
	return filepath.Join(c.Batch.Output.BasePath, job.CaseName(), extractor+".csv")
}

// String returns a short description of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Jobs: %d, Output: %s}",
		len(c.Batch.Jobs), c.Batch.Output.BasePath)
}
