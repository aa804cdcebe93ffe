package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/cognicore/revscope/pkg/revscope/eval"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/store"
	"github.com/cognicore/revscope/pkg/revscope/sweep"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRun(id, app string, at time.Time) store.Run {
	return store.Run{
		ID:         id,
		AppID:      app,
		CreatedAt:  at,
		CorpusSize: 40,
		Evaluations: []sweep.Evaluation{
			{
				ModelName:  "Naive Bayes",
				SplitRatio: "65:35",
				ConfusionMatrix: eval.ConfusionMatrix{
					TruePositive: 5, FalsePositive: 2, TrueNegative: 6, FalseNegative: 1,
					Accuracy: 11.0 / 14, Precision: 5.0 / 7, Recall: 5.0 / 6, F1Score: 0.769,
				},
				PredictionTimeMs: 0.042,
				TestSize:         14,
			},
			{
				ModelName:        "SVM",
				SplitRatio:       "65:35",
				ConfusionMatrix:  eval.ConfusionMatrix{TrueNegative: 14, Accuracy: 1},
				PredictionTimeMs: 0.013,
				TestSize:         14,
			},
		},
		Failures: []string{"KNN @ 65:35: unknown model"},
	}
}

// TestSQLiteRunRoundTrip tests that a saved run reads back unchanged
func TestSQLiteRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	want := sampleRun("01HX0000000000000000000001", "com.example.app", time.Date(2024, 5, 1, 12, 0, 0, 123, time.UTC))
	if err := st.SaveRun(ctx, want); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	got.CreatedAt = want.CreatedAt
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSQLiteSaveRunReplaces(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	r := sampleRun("run-1", "app", time.Now())
	if err := st.SaveRun(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Evaluations = r.Evaluations[:1]
	r.Failures = nil
	if err := st.SaveRun(ctx, r); err != nil {
		t.Fatal(err)
	}

	got, err := st.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Evaluations) != 1 || len(got.Failures) != 0 {
		t.Errorf("expected replaced run, got %d evaluations and failures %v", len(got.Evaluations), got.Failures)
	}
}

func TestSQLiteListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	// sub-second offsets check that ordering is not lexical on a trimmed fraction
	offsets := []time.Duration{100 * time.Millisecond, 120 * time.Millisecond, 2 * time.Second}
	for i, off := range offsets {
		id := []string{"a", "b", "c"}[i]
		if err := st.SaveRun(ctx, sampleRun(id, "app", base.Add(off))); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.SaveRun(ctx, sampleRun("other", "other-app", base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}

	runs, err := st.ListRuns(ctx, "app", 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
		if len(r.Evaluations) != 2 {
			t.Errorf("run %s has %d evaluations", r.ID, len(r.Evaluations))
		}
	}
	if !reflect.DeepEqual(ids, []string{"c", "b", "a"}) {
		t.Errorf("order = %v", ids)
	}

	limited, err := st.ListRuns(ctx, "app", 1)
	if err != nil || len(limited) != 1 || limited[0].ID != "c" {
		t.Errorf("limited = %v, %v", limited, err)
	}

	evals, err := st.LatestEvaluations(ctx, "app")
	if err != nil {
		t.Fatalf("LatestEvaluations: %v", err)
	}
	if len(evals) != 2 || evals[0].ModelName != "Naive Bayes" || evals[1].ModelName != "SVM" {
		t.Errorf("evaluations = %+v", evals)
	}
}

func TestSQLiteNotFound(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	if _, err := st.GetRun(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LatestEvaluations(ctx, "nobody"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	runs, err := st.ListRuns(ctx, "nobody", 5)
	if err != nil || len(runs) != 0 {
		t.Errorf("ListRuns = %v, %v", runs, err)
	}
	if err := st.SaveRun(ctx, store.Run{AppID: "app"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// TestSQLiteConcurrentSaves tests that concurrent writers do not lose runs
func TestSQLiteConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	base := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			if err := st.SaveRun(ctx, sampleRun(id, "app", base.Add(time.Duration(i)*time.Second))); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("SaveRun: %v", err)
	}

	runs, err := st.ListRuns(ctx, "app", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != n {
		t.Errorf("expected %d runs, got %d", n, len(runs))
	}
}
