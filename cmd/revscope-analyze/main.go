package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/cognicore/revscope/internal/logging"
	"github.com/cognicore/revscope/internal/reviews"
	"github.com/cognicore/revscope/pkg/revscope"
	"github.com/cognicore/revscope/pkg/revscope/config"
)

func main() {
	var (
		input   = flag.String("input", "", "Path to JSONL or HTML review export (required)")
		cfgPath = flag.String("config", "", "Optional: YAML configuration file")
		envFile = flag.String("env", "", "Optional: dotenv file with REVSCOPE_* overrides")
		size    = flag.Int("ngram", 0, "Optional: n-gram size override (1-5)")
		limit   = flag.Int("cap", 0, "Optional: result cap override (10, 20, 30 or 50)")
		output  = flag.String("out", "", "Optional: write the report here instead of stdout")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	loader := config.Loader{ConfigPath: *cfgPath, EnvFile: *envFile}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	level, err := logging.ParseLevel(components.Config.LogLevel)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}
	logger := logging.Init(os.Stderr, level)

	opts := components.Options
	opts.Logger = logger
	if *size != 0 {
		opts.NGramSize = *size
	}
	if *limit != 0 {
		opts.ResultCap = *limit
	}
	override := components.Config
	override.NGram.Size, override.ResultCap = opts.NGramSize, opts.ResultCap
	if err := override.Validate(); err != nil {
		log.Fatalf("flags: %v", err)
	}

	items, err := reviews.LoadFile(*input)
	if err != nil {
		log.Fatalf("load reviews: %v", err)
	}

	engine := revscope.New(opts)
	defer engine.Close()

	report := engine.Analyze(reviews.Documents(items))
	logger.Info("analyzed corpus", "documents", report.Documents, "ngrams", len(report.NGrams))

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	if err := writeOutput(*output, out); err != nil {
		log.Fatalf("write report: %v", err)
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
