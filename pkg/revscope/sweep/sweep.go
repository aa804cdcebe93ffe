// Package sweep trains and scores every selected model at every split ratio.
package sweep

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/cognicore/revscope/pkg/revscope/classify"
	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/eval"
	"github.com/cognicore/revscope/pkg/revscope/ingest"
)

// Evaluation is the score of one model trained at one split ratio.
type Evaluation struct {
	ModelName        string               `json:"model_name"`
	SplitRatio       string               `json:"split_ratio"`
	ConfusionMatrix  eval.ConfusionMatrix `json:"confusion_matrix"`
	PredictionTimeMs float64              `json:"prediction_time_ms"`
	TestSize         int                  `json:"test_size"`
}

// Failure records a unit that could not produce an Evaluation.
type Failure struct {
	ModelName  string `json:"model_name"`
	SplitRatio string `json:"split_ratio"`
	Err        error  `json:"-"`
}

func (f Failure) String() string {
	return fmt.Sprintf("%s @ %s: %v", f.ModelName, f.SplitRatio, f.Err)
}

// Result collects what a sweep produced. Evaluations and Failures are in
// dispatch order: ratios in the order given, then models in the order given.
type Result struct {
	Evaluations []Evaluation `json:"evaluations"`
	Failures    []Failure    `json:"failures,omitempty"`
}

// Runner sweeps models across ratios.
type Runner struct {
	// Ratios defaults to dataset.DefaultRatios when empty.
	Ratios []dataset.Ratio
	// Workers bounds concurrent units; <= 0 uses GOMAXPROCS.
	Workers int
	// Seed makes splits and forests reproducible when set.
	Seed   *uint64
	Logger *slog.Logger
}

type unit struct {
	index int
	ratio dataset.Ratio
	model string
}

type outcome struct {
	eval Evaluation
	fail *Failure
}

// Run evaluates every (ratio, model) pair over docs. An empty model list or
// an empty corpus yields an empty Result.
func (r Runner) Run(docs []ingest.Document, models []string) Result {
	if len(docs) == 0 || len(models) == 0 {
		return Result{Evaluations: []Evaluation{}}
	}
	logger := r.logger()
	ratios := r.Ratios
	if len(ratios) == 0 {
		ratios = dataset.DefaultRatios()
	}

	var units []unit
	for _, ratio := range ratios {
		for _, m := range models {
			units = append(units, unit{index: len(units), ratio: ratio, model: m})
		}
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(units) {
		workers = len(units)
	}

	start := time.Now()
	outcomes := make([]outcome, len(units))
	jobs := make(chan unit)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				outcomes[u.index] = r.runUnit(docs, u)
			}
		}()
	}
	for _, u := range units {
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	res := Result{Evaluations: make([]Evaluation, 0, len(units))}
	for _, o := range outcomes {
		if o.fail != nil {
			logger.Warn("sweep unit failed",
				slog.String("model", o.fail.ModelName),
				slog.String("ratio", o.fail.SplitRatio),
				slog.String("error", o.fail.Err.Error()))
			res.Failures = append(res.Failures, *o.fail)
			continue
		}
		res.Evaluations = append(res.Evaluations, o.eval)
	}

	logger.Info("sweep finished",
		slog.Int("documents", len(docs)),
		slog.Int("units", len(units)),
		slog.Int("failures", len(res.Failures)),
		slog.Duration("duration", time.Since(start)))
	return res
}

// runUnit never panics; a panic inside training or prediction is returned as
// a Failure.
func (r Runner) runUnit(docs []ingest.Document, u unit) (out outcome) {
	ratio := u.ratio.String()
	defer func() {
		if p := recover(); p != nil {
			out = outcome{fail: &Failure{ModelName: u.model, SplitRatio: ratio, Err: fmt.Errorf("panic: %v", p)}}
		}
	}()

	fail := func(err error) outcome {
		return outcome{fail: &Failure{ModelName: u.model, SplitRatio: ratio, Err: err}}
	}

	rng := r.source(u.index)
	train, test := dataset.Split(docs, u.ratio, rng)

	c, err := classify.New(u.model, rng)
	if err != nil {
		return fail(err)
	}
	m, err := c.Train(train)
	if err != nil {
		return fail(fmt.Errorf("train: %w", err))
	}

	t0 := time.Now()
	predicted, err := classify.PredictAll(m, test.Features)
	elapsed := time.Since(t0)
	if err != nil {
		return fail(err)
	}

	return outcome{eval: Evaluation{
		ModelName:        u.model,
		SplitRatio:       ratio,
		ConfusionMatrix:  eval.Confusion(test.Labels, predicted),
		PredictionTimeMs: float64(elapsed.Nanoseconds()) / 1e6,
		TestSize:         test.Len(),
	}}
}

func (r Runner) source(index int) *rand.Rand {
	if r.Seed == nil {
		return dataset.RandomSource()
	}
	return rand.New(rand.NewPCG(*r.Seed, uint64(index)))
}

func (r Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
