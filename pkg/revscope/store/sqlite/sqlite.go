package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/revscope/pkg/revscope/eval"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/store"
	"github.com/cognicore/revscope/pkg/revscope/sweep"
)

// timeLayout has a fixed-width fraction so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}
	// pragmas are per connection; one connection keeps them in force
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %v: %w", err, internalerr.ErrStoreUnavailable)
	}

	// Evaluations cascade with their run
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	app_id TEXT NOT NULL,
	created_at TEXT NOT NULL,
	corpus_size INTEGER NOT NULL DEFAULT 0,
	failures TEXT
);

CREATE INDEX IF NOT EXISTS runs_app_created ON runs(app_id, created_at);

CREATE TABLE IF NOT EXISTS evaluations (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	model_name TEXT NOT NULL,
	split_ratio TEXT NOT NULL,
	true_positive INTEGER NOT NULL,
	false_positive INTEGER NOT NULL,
	true_negative INTEGER NOT NULL,
	false_negative INTEGER NOT NULL,
	accuracy REAL NOT NULL,
	precision_score REAL NOT NULL,
	recall_score REAL NOT NULL,
	f1_score REAL NOT NULL,
	prediction_time_ms REAL NOT NULL,
	test_size INTEGER NOT NULL,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run and its evaluations in one transaction
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}
	failures, err := json.Marshal(r.Failures)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO runs (id, app_id, created_at, corpus_size, failures)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	app_id=excluded.app_id,
	created_at=excluded.created_at,
	corpus_size=excluded.corpus_size,
	failures=excluded.failures;
`
	if _, err := tx.ExecContext(ctx, stmt,
		r.ID,
		r.AppID,
		r.CreatedAt.UTC().Format(timeLayout),
		r.CorpusSize,
		string(failures),
	); err != nil {
		return err
	}

	if err := replaceEvaluations(ctx, tx, r.ID, r.Evaluations); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceEvaluations(ctx context.Context, tx *sql.Tx, runID string, evals []sweep.Evaluation) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM evaluations WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(evals) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO evaluations (run_id, position, model_name, split_ratio,
	true_positive, false_positive, true_negative, false_negative,
	accuracy, precision_score, recall_score, f1_score,
	prediction_time_ms, test_size)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, e := range evals {
		m := e.ConfusionMatrix
		if _, err := stmt.ExecContext(ctx, runID, i, e.ModelName, e.SplitRatio,
			m.TruePositive, m.FalsePositive, m.TrueNegative, m.FalseNegative,
			m.Accuracy, m.Precision, m.Recall, m.F1Score,
			e.PredictionTimeMs, e.TestSize,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetRun loads a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, app_id, created_at, corpus_size, failures FROM runs WHERE id=?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	r.Evaluations, err = s.loadEvaluations(ctx, r.ID)
	if err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// ListRuns returns runs for an app, newest first
func (s *sqliteStore) ListRuns(ctx context.Context, appID string, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, app_id, created_at, corpus_size, failures
FROM runs
WHERE app_id=?
ORDER BY created_at DESC, id DESC
LIMIT ?`, appID, limit)
	if err != nil {
		return nil, err
	}

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		runs[i].Evaluations, err = s.loadEvaluations(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// LatestEvaluations returns the evaluations of the newest run for an app
func (s *sqliteStore) LatestEvaluations(ctx context.Context, appID string) ([]sweep.Evaluation, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
SELECT id FROM runs WHERE app_id=? ORDER BY created_at DESC, id DESC LIMIT 1`, appID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("runs for app %s: %w", appID, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.loadEvaluations(ctx, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (store.Run, error) {
	var (
		r         store.Run
		createdAt string
		failures  sql.NullString
	)
	if err := row.Scan(&r.ID, &r.AppID, &createdAt, &r.CorpusSize, &failures); err != nil {
		return store.Run{}, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s created_at: %w", r.ID, err)
	}
	r.CreatedAt = t
	if failures.Valid && failures.String != "" {
		if err := json.Unmarshal([]byte(failures.String), &r.Failures); err != nil {
			return store.Run{}, fmt.Errorf("run %s failures: %w", r.ID, err)
		}
	}
	return r, nil
}

func (s *sqliteStore) loadEvaluations(ctx context.Context, runID string) ([]sweep.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT model_name, split_ratio,
	true_positive, false_positive, true_negative, false_negative,
	accuracy, precision_score, recall_score, f1_score,
	prediction_time_ms, test_size
FROM evaluations
WHERE run_id=?
ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sweep.Evaluation
	for rows.Next() {
		var (
			e sweep.Evaluation
			m eval.ConfusionMatrix
		)
		if err := rows.Scan(&e.ModelName, &e.SplitRatio,
			&m.TruePositive, &m.FalsePositive, &m.TrueNegative, &m.FalseNegative,
			&m.Accuracy, &m.Precision, &m.Recall, &m.F1Score,
			&e.PredictionTimeMs, &e.TestSize,
		); err != nil {
			return nil, err
		}
		e.ConfusionMatrix = m
		out = append(out, e)
	}
	return out, rows.Err()
}
