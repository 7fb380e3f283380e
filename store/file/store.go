// Package file persists the seed record as a single file on the local
// filesystem.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/slashdevops/hwseed"
)

// DefaultPath is used when New is given an empty path.
const DefaultPath = "hwseed.bin"

// Store implements hwseed.Store on one file. Writes go to a temporary file in
// the same directory which is synced and renamed over the target, so a crash
// leaves either the old or the new record.
type Store struct {
	path string
}

var _ hwseed.Store = (*Store)(nil)

// New returns a file store at path, creating its parent directory.
func New(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	return &Store{path: path}, nil
}

// Path returns the record file path.
func (s *Store) Path() string { return s.path }

// Backend returns "file".
func (s *Store) Backend() string { return "file" }

// Load reads the record file.
func (s *Store) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, hwseed.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	return data, nil
}

// Save atomically replaces the record file.
func (s *Store) Save(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".hwseed-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

// Clear removes the record file. A missing file is not an error.
func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}

	return nil
}
