// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/store.go
// Summary: SQLite store for completed scan records.

package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cloctui/stats"
)

// Current schema version - increment this when schema changes require a rebuild
const schemaVersion = 1

// Entry is one recorded scan.
type Entry struct {
	ID          int64
	Target      string
	StartedAt   time.Time
	ToolVersion string
	ElapsedSecs float64
	Files       int
	Lines       int
	Blank       int
	Comment     int
	Code        int
}

// Store persists scan history in a local SQLite database. Recording is
// best-effort: a scan never fails because its history write did.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open opens (or creates) the history database at path. maxEntries bounds
// the number of retained scans; older rows are pruned on insert.
func Open(path string, maxEntries int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	if version != 0 && version != schemaVersion {
		// Stale schema: drop and rebuild. History is a cache, not a record
		// of truth.
		if _, err := db.Exec("DROP TABLE IF EXISTS scans"); err != nil {
			db.Close()
			return nil, fmt.Errorf("reset schema: %w", err)
		}
	}

	const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	target       TEXT NOT NULL,
	started_at   INTEGER NOT NULL,
	tool_version TEXT NOT NULL,
	elapsed_secs REAL NOT NULL,
	files        INTEGER NOT NULL,
	lines        INTEGER NOT NULL,
	blank        INTEGER NOT NULL,
	comment      INTEGER NOT NULL,
	code         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scans_started ON scans(started_at DESC);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", schemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("write schema version: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = 500
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Record inserts one completed scan and prunes entries beyond the retention
// limit.
func (s *Store) Record(target string, startedAt time.Time, res *stats.ScanResult) error {
	_, err := s.db.Exec(
		`INSERT INTO scans (target, started_at, tool_version, elapsed_secs, files, lines, blank, comment, code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		target,
		startedAt.Unix(),
		res.Header.ToolVersion,
		res.Header.ElapsedSeconds,
		res.Header.FileCount,
		res.Header.LineCount,
		res.Summary.Blank,
		res.Summary.Comment,
		res.Summary.Code,
	)
	if err != nil {
		return fmt.Errorf("record scan: %w", err)
	}

	_, err = s.db.Exec(
		`DELETE FROM scans WHERE id NOT IN (SELECT id FROM scans ORDER BY started_at DESC, id DESC LIMIT ?)`,
		s.maxEntries,
	)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

// Recent returns up to n scans, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.Query(
		`SELECT id, target, started_at, tool_version, elapsed_secs, files, lines, blank, comment, code
		 FROM scans ORDER BY started_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedAt int64
		if err := rows.Scan(&e.ID, &e.Target, &startedAt, &e.ToolVersion, &e.ElapsedSecs,
			&e.Files, &e.Lines, &e.Blank, &e.Comment, &e.Code); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.StartedAt = time.Unix(startedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
