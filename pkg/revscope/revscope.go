// Package revscope is the review analytics engine: it preprocesses a review
// corpus, reports term and corpus statistics, and compares sentiment
// classifiers across train/test splits.
package revscope

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/revscope/pkg/revscope/analytics"
	"github.com/cognicore/revscope/pkg/revscope/classify"
	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/ngram"
	"github.com/cognicore/revscope/pkg/revscope/store"
	"github.com/cognicore/revscope/pkg/revscope/sweep"
	"github.com/cognicore/revscope/pkg/revscope/tfidf"
)

// DefaultResultCap is how many ranked terms and n-grams a report keeps.
const DefaultResultCap = 20

// Engine is the main facade.
type Engine struct {
	pipeline  *ingest.Pipeline
	ngramSize int
	resultCap int
	models    []string
	runner    sweep.Runner
	store     store.Store
	logger    *slog.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Normalizer *ingest.Normalizer
	NGramSize  int
	ResultCap  int
	Ratios     []dataset.Ratio
	// Models nil selects every model; an empty non-nil slice selects none.
	Models  []string
	Seed    *uint64
	Workers int
	// Store is optional; without it runs are not persisted.
	Store  store.Store
	Logger *slog.Logger
}

// New creates an Engine.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	size := opts.NGramSize
	if size == 0 {
		size = ngram.DefaultSize
	}
	limit := opts.ResultCap
	if limit == 0 {
		limit = DefaultResultCap
	}
	models := opts.Models
	if models == nil {
		models = classify.Names()
	}
	return &Engine{
		pipeline:  ingest.NewPipeline(opts.Normalizer),
		ngramSize: size,
		resultCap: limit,
		models:    models,
		runner: sweep.Runner{
			Ratios:  opts.Ratios,
			Workers: opts.Workers,
			Seed:    opts.Seed,
			Logger:  logger,
		},
		store:   opts.Store,
		logger:  logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Close closes the store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Preprocess normalizes every document. The returned documents carry their
// processed text.
func (e *Engine) Preprocess(docs []ingest.Document) ([]ingest.Document, []ingest.ProcessedDocument) {
	return e.pipeline.ProcessAll(docs)
}

// Report is the descriptive analysis of a corpus.
type Report struct {
	Documents   int                   `json:"documents"`
	TopTerms    []tfidf.TermWeight    `json:"top_terms"`
	PerDocument []tfidf.DocumentTerms `json:"per_document"`
	NGramSize   int                   `json:"ngram_size"`
	NGrams      []ngram.Count         `json:"ngrams"`
	Stats       analytics.Stats       `json:"stats"`
}

// Analyze preprocesses docs and computes TF-IDF, n-gram and corpus
// statistics. Ranked lists are cut to the result cap.
func (e *Engine) Analyze(docs []ingest.Document) Report {
	processed, _ := e.Preprocess(docs)
	res := tfidf.Compute(tfidf.FromDocuments(processed))

	perDoc := make([]tfidf.DocumentTerms, len(res.PerDocument))
	for i, d := range res.PerDocument {
		terms := d.Terms
		if len(terms) > e.resultCap {
			terms = terms[:e.resultCap]
		}
		perDoc[i] = tfidf.DocumentTerms{DocumentID: d.DocumentID, Terms: terms}
	}

	return Report{
		Documents:   len(docs),
		TopTerms:    res.Top(e.resultCap),
		PerDocument: perDoc,
		NGramSize:   e.ngramSize,
		NGrams:      ngram.ProcessCorpus(processed, e.ngramSize, e.resultCap),
		Stats:       analytics.Summarize(docs, e.pipeline.Normalizer(), e.resultCap),
	}
}

// Compare sweeps the configured models over docs and records the outcome as
// a Run. Features come from a document's processed text when it carries one
// and from its raw text otherwise. When a store is configured the run is
// saved; a save failure is returned together with the complete Run. A sweep
// with nothing to evaluate returns an empty Run that has no ID and is not
// saved.
func (e *Engine) Compare(ctx context.Context, appID string, docs []ingest.Document) (store.Run, error) {
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return store.Run{}, err
		}
	}

	res := e.runner.Run(docs, e.models)

	run := store.Run{
		AppID:       appID,
		CreatedAt:   e.now().UTC(),
		CorpusSize:  len(docs),
		Evaluations: res.Evaluations,
	}
	if len(res.Evaluations) == 0 && len(res.Failures) == 0 {
		return run, nil
	}
	run.ID = e.newID()
	for _, f := range res.Failures {
		run.Failures = append(run.Failures, f.String())
	}

	if e.store != nil {
		if err := e.store.SaveRun(ctx, run); err != nil {
			return run, fmt.Errorf("save run %s: %w", run.ID, err)
		}
		e.logger.Info("saved comparison run",
			slog.String("run_id", run.ID),
			slog.String("app_id", appID),
			slog.Int("evaluations", len(run.Evaluations)))
	}
	return run, nil
}

// History returns stored runs for an app, newest first.
func (e *Engine) History(ctx context.Context, appID string, limit int) ([]store.Run, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no store configured: %w", internalerr.ErrStoreUnavailable)
	}
	return e.store.ListRuns(ctx, appID, limit)
}

func (e *Engine) newID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(e.now()), e.entropy).String()
}
