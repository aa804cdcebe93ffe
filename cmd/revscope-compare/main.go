package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/revscope/internal/logging"
	"github.com/cognicore/revscope/internal/reviews"
	"github.com/cognicore/revscope/pkg/revscope"
	"github.com/cognicore/revscope/pkg/revscope/classify"
	"github.com/cognicore/revscope/pkg/revscope/config"
	"github.com/cognicore/revscope/pkg/revscope/store/sqlite"
)

func main() {
	var (
		input   = flag.String("input", "", "Path to JSONL or HTML review export (required unless --history)")
		appID   = flag.String("app", "", "App identifier for stored runs (default: input file name)")
		cfgPath = flag.String("config", "", "Optional: YAML configuration file")
		envFile = flag.String("env", "", "Optional: dotenv file with REVSCOPE_* overrides")
		dbPath  = flag.String("db", "", "Optional: SQLite database for run history (overrides db_path)")
		models  = flag.String("models", "", "Optional: comma separated models, e.g. \"SVM,Naive Bayes\"")
		history = flag.Int("history", 0, "Print the last N stored runs for --app and exit")
	)
	flag.Parse()

	if *input == "" && *history == 0 {
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
	if *models != "" {
		selected, err := parseModels(*models)
		if err != nil {
			log.Fatalf("--models: %v", err)
		}
		opts.Models = selected
	}

	ctx := context.Background()
	path := components.Config.DBPath
	if *dbPath != "" {
		path = *dbPath
	}
	if path != "" {
		st, err := sqlite.OpenSQLite(ctx, path)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		opts.Store = st
	}

	engine := revscope.New(opts)
	defer engine.Close()

	app := *appID
	if app == "" {
		app = appFromPath(*input)
	}

	if *history > 0 {
		if app == "" {
			log.Fatal("--app required with --history")
		}
		runs, err := engine.History(ctx, app, *history)
		if err != nil {
			log.Fatalf("history: %v", err)
		}
		printJSON(runs)
		return
	}

	items, err := reviews.LoadFile(*input)
	if err != nil {
		log.Fatalf("load reviews: %v", err)
	}

	run, err := engine.Compare(ctx, app, reviews.Documents(items))
	if err != nil {
		// the run is still reported when only persistence failed
		logger.Error("compare", "error", err)
		if run.ID == "" {
			os.Exit(1)
		}
	}
	printJSON(run)
}

// parseModels splits a comma separated model list and checks each name.
func parseModels(s string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !classify.Known(name) {
			return nil, fmt.Errorf("unknown model %q (known: %s)", name, strings.Join(classify.Names(), ", "))
		}
		out = append(out, name)
	}
	return out, nil
}

// appFromPath derives an app id from the input file name.
func appFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(out))
}
