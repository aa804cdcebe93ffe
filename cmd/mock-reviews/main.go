package main

import (
	"flag"
	"log"
	"time"

	"github.com/cognicore/revscope/internal/reviews"
	"github.com/cognicore/revscope/pkg/revscope/dataset"
)

func main() {
	var (
		appID  = flag.String("app", "", "App identifier used in review ids (required)")
		count  = flag.Int("count", 100, "Number of reviews to generate")
		seed   = flag.Int64("seed", -1, "Optional: random seed for a reproducible corpus")
		output = flag.String("out", "", "Output JSONL path (required)")
	)
	flag.Parse()

	if *appID == "" {
		log.Fatal("--app required")
	}
	if *output == "" {
		log.Fatal("--out required")
	}
	if *count < 1 {
		log.Fatal("--count must be positive")
	}

	rng := dataset.RandomSource()
	if *seed >= 0 {
		rng = dataset.NewSource(uint64(*seed))
	}

	items := reviews.Mock(*appID, *count, rng, time.Now())
	if err := reviews.WriteJSONL(*output, items); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}
	log.Printf("Wrote %d mock reviews for %s to %s", len(items), *appID, *output)
}
