// Package statsdb records one row of summary statistics per fuzzing run
// to a local SQLite database, adapted from the teacher's internal/database
// connection-management idiom (sql.Open against modernc.org/sqlite, ping,
// pooled *sql.DB) narrowed to a single history table keyed by run ID.
package statsdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/google/uuid"

	"zebra/internal/fuzzer"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  DATETIME NOT NULL,
	seed        INTEGER NOT NULL,
	engine      TEXT NOT NULL,
	iterations  INTEGER NOT NULL,
	crashes     INTEGER NOT NULL,
	timeouts    INTEGER NOT NULL,
	incorrect   INTEGER NOT NULL
);`

// DB is a handle to the run-history store.
type DB struct {
	conn *sql.DB
}

// Open creates (if necessary) and opens the SQLite database at path.
// Use ":memory:" for an ephemeral, test-only store.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("statsdb: open %s: %w", path, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("statsdb: ping %s: %w", path, err)
	}

	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("statsdb: create schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.conn.Close()
}

// RecordRun writes one row summarizing a completed (or in-progress) run,
// replacing any earlier row with the same run ID.
func (d *DB) RecordRun(ctx context.Context, runID uuid.UUID, startedAt time.Time, seed int64, engine string, snapshot fuzzer.Stats) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, started_at, seed, engine, iterations, crashes, timeouts, incorrect)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), startedAt, seed, engine,
		snapshot.Iter, snapshot.Crashes, snapshot.Timeouts, snapshot.Incorrect,
	)
	if err != nil {
		return fmt.Errorf("statsdb: record run %s: %w", runID, err)
	}
	return nil
}

// Run is one historical row, as read back from the store.
type Run struct {
	ID         string
	StartedAt  time.Time
	Seed       int64
	Engine     string
	Iterations uint64
	Crashes    uint64
	Timeouts   uint64
	Incorrect  uint64
}

// RecentRuns returns up to limit most recent runs, newest first.
func (d *DB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT id, started_at, seed, engine, iterations, crashes, timeouts, incorrect
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("statsdb: query recent runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Seed, &r.Engine,
			&r.Iterations, &r.Crashes, &r.Timeouts, &r.Incorrect); err != nil {
			return nil, fmt.Errorf("statsdb: scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
