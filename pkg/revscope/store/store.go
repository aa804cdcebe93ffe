package store

import (
	"context"
	"time"

	"github.com/cognicore/revscope/pkg/revscope/sweep"
)

// Store persists model comparison runs.
type Store interface {
	Close() error

	// SaveRun inserts the run, or replaces it when the ID already exists.
	SaveRun(ctx context.Context, r Run) error
	// GetRun returns internalerr.ErrNotFound for an unknown ID.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs for an app first. limit <= 0 returns
	// every run.
	ListRuns(ctx context.Context, appID string, limit int) ([]Run, error)
	// LatestEvaluations returns the evaluations of the newest run for an
	// app, or internalerr.ErrNotFound when the app has none.
	LatestEvaluations(ctx context.Context, appID string) ([]sweep.Evaluation, error)
}

// Run is one stored comparison over a corpus.
type Run struct {
	ID          string             `json:"id"`
	AppID       string             `json:"app_id"`
	CreatedAt   time.Time          `json:"created_at"`
	CorpusSize  int                `json:"corpus_size"`
	Evaluations []sweep.Evaluation `json:"evaluations"`
	Failures    []string           `json:"failures,omitempty"`
}
