package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/revscope/pkg/revscope/classify"
	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Preprocessing != ingest.DefaultOptions() {
		t.Errorf("preprocessing = %+v", cfg.Preprocessing)
	}
	if cfg.NGram.Size != 2 || cfg.ResultCap != 20 {
		t.Errorf("ngram %d cap %d", cfg.NGram.Size, cfg.ResultCap)
	}
	ratios, err := cfg.Ratios()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ratios, dataset.DefaultRatios()) {
		t.Errorf("ratios = %v", ratios)
	}
	if !reflect.DeepEqual(cfg.Models, classify.Names()) {
		t.Errorf("models = %v", cfg.Models)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "revscope.yaml", `
preprocessing:
  apply_stemming: true
ngram:
  size: 3
result_cap: 50
models: ["SVM"]
seed: 42
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Preprocessing.ApplyStemming || !cfg.Preprocessing.Lowercase || !cfg.Preprocessing.RemoveStopWords {
		t.Errorf("preprocessing = %+v", cfg.Preprocessing)
	}
	if cfg.NGram.Size != 3 || cfg.ResultCap != 50 {
		t.Errorf("ngram %d cap %d", cfg.NGram.Size, cfg.ResultCap)
	}
	if !reflect.DeepEqual(cfg.Models, []string{"SVM"}) {
		t.Errorf("models = %v", cfg.Models)
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("seed = %v", cfg.Seed)
	}
	if len(cfg.SplitRatios) != 4 {
		t.Errorf("split ratios = %v", cfg.SplitRatios)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]func(*Config){
		"ngram too small": func(c *Config) { c.NGram.Size = 0 },
		"ngram too large": func(c *Config) { c.NGram.Size = 6 },
		"result cap":      func(c *Config) { c.ResultCap = 25 },
		"ratio sum":       func(c *Config) { c.SplitRatios = []string{"70:20"} },
		"ratio form":      func(c *Config) { c.SplitRatios = []string{"70-30"} },
		"model":           func(c *Config) { c.Models = []string{"KNN"} },
		"workers":         func(c *Config) { c.Workers = -1 },
	}
	for name, mutate := range tests {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/revscope.yaml"); err == nil {
		t.Error("expected error for missing file")
	}

	bad := writeFile(t, "bad.yaml", "ngram: [oops")
	if _, err := Load(bad); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for bad yaml, got %v", err)
	}

	invalid := writeFile(t, "invalid.yaml", "ngram:\n  size: 9\n")
	if _, err := Load(invalid); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for size 9, got %v", err)
	}
}
