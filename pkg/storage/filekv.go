package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileFormatVersion = "1"

// fileDocument is the on-disk layout of a FileKV.
type fileDocument struct {
	Version string            `json:"version"`
	Entries map[string]string `json:"entries"`
}

// FileKV implements KV using a JSON file.
//
// The file is read on every Get so that values written by another process
// are always observed. Set rewrites the whole file atomically.
type FileKV struct {
	path string
	mu   sync.Mutex
}

// NewFileKV creates a file-backed store at path.
// If path is empty, defaults to ~/.memopad/memos.json
func NewFileKV(path string) (*FileKV, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".memopad", "memos.json")
	}

	return &FileKV{path: path}, nil
}

// Path returns the file path of the store.
func (s *FileKV) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *FileKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", false, err
	}

	v, ok := doc.Entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	doc.Entries[key] = value
	return s.write(doc)
}

// read loads the document from disk. A missing file is an empty store.
func (s *FileKV) read() (*fileDocument, error) {
	doc := &fileDocument{
		Version: fileFormatVersion,
		Entries: make(map[string]string),
	}

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("storage: failed to open %s: %w", s.path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(doc); err != nil {
		return nil, fmt.Errorf("storage: failed to decode %s: %w", s.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = make(map[string]string)
	}

	return doc, nil
}

// write saves the document via a temp file and rename.
func (s *FileKV) write(doc *fileDocument) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("storage: failed to create directory: %w", err)
	}

	// A unique name per write keeps concurrent writers off each other's temp file
	file, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: failed to create temp file: %w", err)
	}
	tempPath := file.Name()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("storage: failed to encode store: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("storage: failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("storage: failed to rename temp file: %w", err)
	}

	return nil
}
