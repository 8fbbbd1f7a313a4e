// Package history records completed PageRank runs in a local SQLite
// database so past estimates can be listed and compared without re-running
// the estimators.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// ErrRunNotFound is returned when a run ID does not exist in the store.
var ErrRunNotFound = errors.New("run not found")

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    corpus      TEXT NOT NULL,
    pages       INTEGER NOT NULL,
    damping     REAL NOT NULL,
    samples     INTEGER NOT NULL,
    iterations  INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ranks (
    run_id   INTEGER NOT NULL REFERENCES runs(id),
    page     TEXT NOT NULL,
    sampled  REAL NOT NULL,
    iterated REAL NOT NULL,
    PRIMARY KEY (run_id, page)
);
`

// Run is one recorded PageRank computation over a corpus.
type Run struct {
	ID         int64
	Corpus     string // directory the corpus was crawled from
	Pages      int
	Damping    float64
	Samples    int
	Iterations int // passes the iterative estimator needed
	Duration   time.Duration
	CreatedAt  time.Time
}

// PageRanks holds both estimates for a single page of a recorded run.
type PageRanks struct {
	Page     string
	Sampled  float64
	Iterated float64
}

// Store persists runs in a local SQLite database in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode and
// busy timeout, and creates the schema tables if they do not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled connections
	// that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts a run together with both rank vectors in one transaction
// and returns the new run ID. The two maps must be keyed by the same pages.
func (s *Store) Record(ctx context.Context, run Run, sampled, iterated map[string]float64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("history: begin transaction: %w", err)
	}
	defer tx.Rollback()

	const insertRun = `
		INSERT INTO runs (corpus, pages, damping, samples, iterations, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insertRun,
		run.Corpus, run.Pages, run.Damping, run.Samples, run.Iterations,
		run.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last insert id: %w", err)
	}

	const insertRank = `INSERT INTO ranks (run_id, page, sampled, iterated) VALUES (?, ?, ?, ?)`
	for page, value := range sampled {
		if _, err := tx.ExecContext(ctx, insertRank, id, page, value, iterated[page]); err != nil {
			return 0, fmt.Errorf("history: insert rank for %s: %w", page, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("history: commit: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	const q = `
		SELECT id, corpus, pages, damping, samples, iterations, duration_ms, created_at
		FROM runs ORDER BY id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Corpus, &r.Pages, &r.Damping, &r.Samples,
			&r.Iterations, &durationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Ranks returns the recorded per-page estimates of a run, sorted by page.
// Returns ErrRunNotFound if the run does not exist.
func (s *Store) Ranks(ctx context.Context, runID int64) ([]PageRanks, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("history: check run: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("history: %w: %d", ErrRunNotFound, runID)
	}

	const q = `SELECT page, sampled, iterated FROM ranks WHERE run_id = ? ORDER BY page`
	rows, err := s.db.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, fmt.Errorf("history: query ranks: %w", err)
	}
	defer rows.Close()

	var ranks []PageRanks
	for rows.Next() {
		var pr PageRanks
		if err := rows.Scan(&pr.Page, &pr.Sampled, &pr.Iterated); err != nil {
			return nil, fmt.Errorf("history: scan rank: %w", err)
		}
		ranks = append(ranks, pr)
	}
	return ranks, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
