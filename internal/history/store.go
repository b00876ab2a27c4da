// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists finished batch reports to a local SQLite
// database so past runs and their per-file outcomes stay reviewable.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docmark/pkg/types"
)

const (
	// DefaultDir is the directory holding the history database when none
	// is configured.
	DefaultDir = ".docmark"

	dbFile         = "history.db"
	defaultMaxRuns = 20
)

// Store manages the batch history SQLite database.
type Store struct {
	db      *sql.DB
	maxRuns int
}

// NewStore opens or creates the history database at cfg.Dir/history.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = defaultMaxRuns
	}

	s := &Store{db: db, maxRuns: maxRuns}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			total INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			partial INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			success INTEGER NOT NULL,
			failure TEXT,
			diagnostic TEXT,
			elapsed_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordBatch stores a finished report and its per-file results in one
// transaction, returning the new run's id.
func (s *Store) RecordBatch(ctx context.Context, report types.BatchReport) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, elapsed_ms, total, succeeded, failed, partial)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.Elapsed.Milliseconds(),
		report.Total(), report.Succeeded(), report.Failed(),
		boolToInt(report.Partial),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, position, input_path, output_path, success, failure, diagnostic, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range report.Results {
		_, err := stmt.ExecContext(ctx,
			runID, i+1, r.Task.InputPath, r.Task.OutputPath,
			boolToInt(r.Success), string(r.Failure), r.Diagnostic,
			r.Elapsed.Milliseconds(),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting result %s: %w", r.Task.InputPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunSummary holds the run-level fields shown by the history command.
type RunSummary struct {
	ID        int64
	StartedAt time.Time
	Elapsed   time.Duration
	Total     int
	Succeeded int
	Failed    int
	Partial   bool
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit falls back to the store's configured maximum.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = s.maxRuns
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, elapsed_ms, total, succeeded, failed, partial
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			r         RunSummary
			startedAt string
			elapsedMS int64
			partial   int
		)
		if err := rows.Scan(&r.ID, &startedAt, &elapsedMS, &r.Total, &r.Succeeded, &r.Failed, &partial); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = ts
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		r.Partial = partial != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
