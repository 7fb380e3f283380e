// Package sqlite persists the seed record in an SQLite database using the
// pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slashdevops/hwseed"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultPath is used when New is given an empty path.
const DefaultPath = "hwseed.db"

// recordID is the primary key of the single seed record row.
const recordID = 1

// Store implements hwseed.Store on a one-row table.
type Store struct {
	db   *sql.DB
	path string
}

var _ hwseed.Store = (*Store)(nil)

// New opens (or creates) the database at path and ensures the table exists.
func New(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS seed_record (
		id INTEGER PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create seed_record table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Backend returns "sqlite".
func (s *Store) Backend() string { return "sqlite" }

// Load returns the stored payload.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM seed_record WHERE id = ?`, recordID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hwseed.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select seed_record: %w", err)
	}

	return payload, nil
}

// Save upserts the payload.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO seed_record(id, payload) VALUES(?, ?) ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		recordID, data); err != nil {
		return fmt.Errorf("upsert seed_record: %w", err)
	}

	return nil
}

// Clear deletes the stored payload.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seed_record WHERE id = ?`, recordID); err != nil {
		return fmt.Errorf("delete seed_record: %w", err)
	}

	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for tests.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database path.
func (s *Store) Path() string { return s.path }
