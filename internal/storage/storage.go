// Package storage persists application state slices as JSON snapshots in
// a small sqlite key-value table. Each slice (auth session, favorites)
// owns one key and serializes its whole state on every write; there are
// no transactional guarantees across keys.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports that a key has never been written. First-run
// callers treat it as "use defaults".
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable key-value store of JSON-serialized slice snapshots.
type Store struct {
	db *sql.DB
}

// Open creates or opens the store at path, creating parent directories as
// needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slices (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the snapshot stored under key, or ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slices WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slice %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set replaces the snapshot stored under key.
func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slices (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write slice %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot stored under key. Deleting an absent key is
// not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM slices WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete slice %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
