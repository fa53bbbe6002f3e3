package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "batch.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

const validConfig = `
batch:
  output:
    base_path: ./output
    format: csv
  logging:
    level: info
  jobs:
    - name: reek
      datafile: /data/REEK.DATA
      extractors: [compdat, summary]
      enabled: true
    - datafile: /data/DROGON.DATA
      extractors: [equil]
      enabled: false
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.Batch.Jobs) != 2 {
		t.Fatalf("Expected 2 jobs, got %d", len(cfg.Batch.Jobs))
	}

	enabled := cfg.EnabledJobs()
	if len(enabled) != 1 || enabled[0].Name != "reek" {
		t.Errorf("Expected only the reek job enabled, got %+v", enabled)
	}

	if got := enabled[0].CaseName(); got != "reek" {
		t.Errorf("Expected case name reek, got %s", got)
	}

	disabled := cfg.Batch.Jobs[1]
	if got := disabled.CaseName(); got != "DROGON" {
		t.Errorf("Expected case name from datafile basename, got %s", got)
	}

	want := filepath.Join("output", "reek", "compdat.csv")
	if got := cfg.OutputPath(&enabled[0], "compdat"); got != want {
		t.Errorf("Expected output path %s, got %s", want, got)
	}
}

func TestValidate_NoJobs(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
batch:
  output:
    base_path: ./output
  jobs: []
`))
	if !errors.Is(err, ErrNoJobs) {
		t.Errorf("Expected ErrNoJobs, got %v", err)
	}
}

func TestValidate_MissingDatafile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
batch:
  output:
    base_path: ./output
  jobs:
    - extractors: [compdat]
      enabled: true
`))
	if !errors.Is(err, ErrJobMissingDatafile) {
		t.Errorf("Expected ErrJobMissingDatafile, got %v", err)
	}
}

func TestValidate_UnknownExtractor(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
batch:
  output:
    base_path: ./output
  jobs:
    - datafile: /data/REEK.DATA
      extractors: [pillars]
      enabled: true
`))
	if !errors.Is(err, ErrUnknownExtractor) {
		t.Errorf("Expected ErrUnknownExtractor, got %v", err)
	}
}

func TestValidate_NoEnabledJobs(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
batch:
  output:
    base_path: ./output
  jobs:
    - datafile: /data/REEK.DATA
      extractors: [compdat]
      enabled: false
`))
	if !errors.Is(err, ErrNoEnabledJobs) {
		t.Errorf("Expected ErrNoEnabledJobs, got %v", err)
	}
}

func TestValidate_MissingOutputPath(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
batch:
  jobs:
    - datafile: /data/REEK.DATA
      extractors: [compdat]
      enabled: true
`))
	if !errors.Is(err, ErrMissingOutputPath) {
		t.Errorf("Expected ErrMissingOutputPath, got %v", err)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
batch:
  output:
    base_path: ./output
  logging:
    level: chatty
  jobs:
    - datafile: /data/REEK.DATA
      extractors: [compdat]
      enabled: true
`))
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Expected ErrInvalidLogLevel, got %v", err)
	}
}
