package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/revscope/pkg/revscope"
	"github.com/cognicore/revscope/pkg/revscope/classify"
	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/ngram"
)

// DefaultResultCap is the number of ranked n-grams and TF-IDF terms kept
// when nothing else is configured.
const DefaultResultCap = revscope.DefaultResultCap

// ResultCaps are the selectable result caps.
var ResultCaps = []int{10, 20, 30, 50}

// NGram configures n-gram extraction.
type NGram struct {
	Size int `yaml:"size"`
}

// Config is the YAML configuration file.
type Config struct {
	Preprocessing ingest.Options `yaml:"preprocessing"`
	Stoplist      string         `yaml:"stoplist"`
	NGram         NGram          `yaml:"ngram"`
	ResultCap     int            `yaml:"result_cap"`
	SplitRatios   []string       `yaml:"split_ratios"`
	Models        []string       `yaml:"models"`
	Seed          *uint64        `yaml:"seed"`
	Workers       int            `yaml:"workers"`
	DBPath        string         `yaml:"db_path"`
	LogLevel      string         `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	ratios := dataset.DefaultRatios()
	names := make([]string, len(ratios))
	for i, r := range ratios {
		names[i] = r.String()
	}
	return Config{
		Preprocessing: ingest.DefaultOptions(),
		NGram:         NGram{Size: ngram.DefaultSize},
		ResultCap:     DefaultResultCap,
		SplitRatios:   names,
		Models:        classify.Names(),
		LogLevel:      "info",
	}
}

// Load reads a YAML file on top of Default, so keys missing from the file
// keep their default values. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every value against its allowed range.
func (c Config) Validate() error {
	if c.NGram.Size < ngram.MinSize || c.NGram.Size > ngram.MaxSize {
		return fmt.Errorf("ngram size %d outside %d-%d: %w", c.NGram.Size, ngram.MinSize, ngram.MaxSize, internalerr.ErrInvalidConfig)
	}
	if !validCap(c.ResultCap) {
		return fmt.Errorf("result cap %d not one of %v: %w", c.ResultCap, ResultCaps, internalerr.ErrInvalidConfig)
	}
	if _, err := c.Ratios(); err != nil {
		return err
	}
	for _, m := range c.Models {
		if !classify.Known(m) {
			return fmt.Errorf("model %q: %w", m, internalerr.ErrInvalidConfig)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Ratios parses SplitRatios.
func (c Config) Ratios() ([]dataset.Ratio, error) {
	out := make([]dataset.Ratio, 0, len(c.SplitRatios))
	for _, s := range c.SplitRatios {
		r, err := dataset.ParseRatio(s)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, internalerr.ErrInvalidConfig)
		}
		out = append(out, r)
	}
	return out, nil
}

func validCap(n int) bool {
	for _, c := range ResultCaps {
		if c == n {
			return true
		}
	}
	return false
}
