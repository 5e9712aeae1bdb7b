// Package store persists the notebook collection as a single keyed blob in
// a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"regpad/internal/docfile"
	regerrors "regpad/internal/errors"
	"regpad/internal/notebook"
)

// CollectionKey is the fixed application key the whole collection lives
// under.
const CollectionKey = "regpad/collection"

const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Store is a key-to-blob table on a local SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, regerrors.NewStorage("failed to open database", path, err)
	}
	// a single local writer; more connections just contend on the file lock
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, regerrors.NewStorage("failed to initialize schema", path, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path, for display.
func (s *Store) Path() string {
	return s.path
}

// Get returns the blob stored under key, or nil when the key is absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, regerrors.NewStorage(fmt.Sprintf("failed to read key %q", key), s.path, err)
	}
	return value, nil
}

// Put stores the blob under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, time.Now().UTC())
	if err != nil {
		return regerrors.NewStorage(fmt.Sprintf("failed to write key %q", key), s.path, err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM blobs WHERE key = ?", key); err != nil {
		return regerrors.NewStorage(fmt.Sprintf("failed to delete key %q", key), s.path, err)
	}
	return nil
}

// UpdatedAt reports when a key was last written; ok is false for absent
// keys.
func (s *Store) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	var at time.Time
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM blobs WHERE key = ?", key).Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, regerrors.NewStorage(fmt.Sprintf("failed to stat key %q", key), s.path, err)
	}
	return at, true, nil
}

// LoadCollection reads the collection blob. Storage failures are logged
// and degrade to an empty collection so the tool stays usable; an invalid
// stored document is surfaced, since silently discarding user data would
// be worse than failing.
func (s *Store) LoadCollection(ctx context.Context) (*notebook.Collection, error) {
	data, err := s.Get(ctx, CollectionKey)
	if err != nil {
		log.Printf("storage unavailable, starting empty: %v", err)
		return &notebook.Collection{}, nil
	}
	if data == nil {
		return &notebook.Collection{}, nil
	}
	return docfile.DecodeCollection(data)
}

// SaveCollection writes the collection blob under the application key.
func (s *Store) SaveCollection(ctx context.Context, c *notebook.Collection) error {
	data, err := docfile.EncodeCollection(c)
	if err != nil {
		return err
	}
	return s.Put(ctx, CollectionKey, data)
}
