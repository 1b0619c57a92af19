// Package store persists tab-count observations to a local SQLite database
// so callers can later ask how a browser's tab count trended over time.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// CountSample is one recorded observation of a browser's tab count.
type CountSample struct {
	Browser    string
	Count      int
	ObservedAt time.Time
}

// Store wraps a SQLite-backed counts database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default counts database location under
// ~/.local/share. $XDG_DATA_HOME is not consulted.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local/share/open-tab-tracker/counts.db"), nil
}

// Open opens (creating if necessary) the counts database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %v", ErrUnavailable, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrUnavailable, path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS count_samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			browser TEXT NOT NULL,
			count INTEGER NOT NULL,
			observed_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_count_samples_browser_observed
			ON count_samples (browser, observed_at);
	`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("%w: migrating schema: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a new observation. Callers that can't tolerate a
// persistence failure should check the error; the CLI treats it as a
// logged warning rather than fatal.
func (s *Store) Record(browser string, count int, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO count_samples (browser, count, observed_at) VALUES (?, ?, ?)`,
		browser, count, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: recording sample: %v", ErrUnavailable, err)
	}
	return nil
}

// Since returns every sample for browser observed at or after since,
// newest first.
func (s *Store) Since(browser string, since time.Time) ([]CountSample, error) {
	rows, err := s.db.Query(
		`SELECT browser, count, observed_at FROM count_samples
		 WHERE browser = ? AND observed_at >= ?
		 ORDER BY observed_at DESC`,
		browser, since.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying samples: %v", ErrUnavailable, err)
	}
	defer rows.Close()
	return scanSamples(rows)
}

// Recent returns the most recent limit samples for browser, newest first.
func (s *Store) Recent(browser string, limit int) ([]CountSample, error) {
	rows, err := s.db.Query(
		`SELECT browser, count, observed_at FROM count_samples
		 WHERE browser = ?
		 ORDER BY observed_at DESC
		 LIMIT ?`,
		browser, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: querying samples: %v", ErrUnavailable, err)
	}
	defer rows.Close()
	return scanSamples(rows)
}

func scanSamples(rows *sql.Rows) ([]CountSample, error) {
	samples := make([]CountSample, 0)
	for rows.Next() {
		var c CountSample
		var observedAt int64
		if err := rows.Scan(&c.Browser, &c.Count, &observedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning sample: %v", ErrUnavailable, err)
		}
		c.ObservedAt = time.Unix(observedAt, 0).UTC()
		samples = append(samples, c)
	}
	return samples, rows.Err()
}
