package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/subosito/gotenv"

	"github.com/cognicore/revscope/pkg/revscope"
	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/stoplist"
)

// Environment variables that override the file.
const (
	EnvDBPath   = "REVSCOPE_DB_PATH"
	EnvSeed     = "REVSCOPE_SEED"
	EnvWorkers  = "REVSCOPE_WORKERS"
	EnvLogLevel = "REVSCOPE_LOG_LEVEL"
)

// Loader loads the configuration file and environment and constructs
// components.
type Loader struct {
	ConfigPath string
	EnvFile    string
}

// Components holds everything built from the configuration.
type Components struct {
	Config     Config
	Normalizer *ingest.Normalizer
	// Options is ready for revscope.New once Store and Logger are set.
	Options revscope.Options
}

// Load reads the optional dotenv file, the optional config file and the
// environment overrides, then builds components.
func (l *Loader) Load() (*Components, error) {
	if l.EnvFile != "" {
		if err := gotenv.Load(l.EnvFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := Default()
	if l.ConfigPath != "" {
		var err error
		cfg, err = Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var stops *stoplist.Manager
	if cfg.Stoplist != "" {
		var err error
		stops, err = stoplist.Load(cfg.Stoplist)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
	}
	normalizer := ingest.NewNormalizer(cfg.Preprocessing, stops)

	ratios, err := cfg.Ratios()
	if err != nil {
		return nil, err
	}

	return &Components{
		Config:     cfg,
		Normalizer: normalizer,
		Options: revscope.Options{
			Normalizer: normalizer,
			NGramSize:  cfg.NGram.Size,
			ResultCap:  cfg.ResultCap,
			Ratios:     ratios,
			Models:     cfg.Models,
			Seed:       cfg.Seed,
			Workers:    cfg.Workers,
		},
	}, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvDBPath); ok {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, v, internalerr.ErrInvalidConfig)
		}
		cfg.Seed = &seed
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, v, internalerr.ErrInvalidConfig)
		}
		cfg.Workers = n
	}
	return nil
}
