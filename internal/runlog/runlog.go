// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog records generation runs and per-job outcomes in a local
// SQLite database. The log is observability only: the pipeline never reads
// it back to resume or skip work, and a logging failure never aborts a run.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "runs.db"

// Store manages the run log SQLite database.
type Store struct {
	db *sql.DB
}

// RunSummary is one recorded run, newest first in Recent results.
type RunSummary struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Mode       string
	Planned    int
	Completed  int
	Status     string
	Error      string
}

// JobRecord is one job outcome within a run.
type JobRecord struct {
	Identity string
	Mode     string
	Status   string
	Duration time.Duration
	Error    string
}

// Open opens or creates the run log database at dir/runs.db, creating the
// schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run log directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening run log database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating run log schema: %w", err)
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
			finished_at TEXT,
			mode TEXT NOT NULL,
			jobs_planned INTEGER NOT NULL,
			jobs_completed INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'running',
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			identity TEXT NOT NULL,
			mode TEXT NOT NULL,
			status TEXT NOT NULL,
			duration_ms INTEGER,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_run_id ON jobs(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// StartRun records the beginning of a run and returns its ID.
func (s *Store) StartRun(ctx context.Context, mode string, planned int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, mode, jobs_planned) VALUES (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), mode, planned,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}
	return id, nil
}

// RecordJob appends one job outcome to a run.
func (s *Store) RecordJob(ctx context.Context, runID int64, rec JobRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (run_id, identity, mode, status, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, rec.Identity, rec.Mode, rec.Status, rec.Duration.Milliseconds(), rec.Error,
	)
	if err != nil {
		return fmt.Errorf("recording job %s: %w", rec.Identity, err)
	}
	return nil
}

// FinishRun marks a run finished with its final status.
func (s *Store) FinishRun(ctx context.Context, runID int64, completed int, status, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, jobs_completed = ?, status = ?, error = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), completed, status, errMsg, runID,
	)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), mode, jobs_planned,
		        jobs_completed, status, COALESCE(error, '')
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Mode, &r.Planned,
			&r.Completed, &r.Status, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
