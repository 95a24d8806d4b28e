package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createKVTableSQL = `
CREATE TABLE IF NOT EXISTS kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`

// SQLiteKV implements KV on a SQLite database.
type SQLiteKV struct {
	db     *sql.DB
	closed bool
}

// OpenSQLiteKV opens (creating if needed) a SQLite store at path.
// If path is empty, defaults to ~/.memopad/memos.db
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".memopad", "memos.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("storage: failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	if _, err := db.Exec(createKVTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: migrate %s: %w", path, err)
	}

	return &SQLiteKV{db: db}, nil
}

// Get returns the value stored under key.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	if s.closed {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQLiteKV) Set(key, value string) error {
	if s.closed {
		return ErrClosed
	}

	_, err := s.db.Exec(`
INSERT INTO kv(key, value) VALUES(?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value
`, key, value)
	if err != nil {
		return fmt.Errorf("storage: set %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteKV) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
