// Package postgres persists the seed record in a Postgres table through the
// pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/slashdevops/hwseed"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/hwseed?sslmode=disable"
	recordID      = 1
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store implements hwseed.Store on a one-row table.
type Store struct {
	db *sql.DB
}

var _ hwseed.Store = (*Store)(nil)

// New connects to dsn (falling back to a local default), verifies the
// connection and ensures the table exists.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS seed_record (
		id INTEGER PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure seed_record table: %w", err)
	}

	return &Store{db: db}, nil
}

// Backend returns "postgres".
func (s *Store) Backend() string { return "postgres" }

// Load returns the stored payload.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM seed_record WHERE id = $1`, recordID).Scan(&payload)
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
		`INSERT INTO seed_record(id, payload) VALUES($1, $2) ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		recordID, data); err != nil {
		return fmt.Errorf("upsert seed_record: %w", err)
	}

	return nil
}

// Clear deletes the stored payload.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seed_record WHERE id = $1`, recordID); err != nil {
		return fmt.Errorf("delete seed_record: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration tests.
func (s *Store) DB() *sql.DB { return s.db }
