// Package storage persists the memo list as a single serialized value in a
// synchronous string key/value store.
//
// The KV interface models the platform storage primitive: one namespace,
// string keys and values, no transactions. Three media are provided:
//
//   - FileKV: a JSON document on disk, re-read on every access
//   - SQLiteKV: a two-column table in a SQLite database
//   - MemoryKV: a process-local map
//
// Adapter sits on top of any KV and converts between the stored blob and
// []memo.Memo.
package storage

import (
	"errors"
	"sync"
)

// ErrClosed is returned by media that have been closed.
var ErrClosed = errors.New("storage: store is closed")

// KV is a synchronous string key/value store.
type KV interface {
	// Get returns the value stored under key. ok is false if the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(key, value string) error
}

// MemoryKV is an in-memory KV.
type MemoryKV struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (s *MemoryKV) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *MemoryKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}
