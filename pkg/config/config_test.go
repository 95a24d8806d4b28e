package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/entrhq/memopad/pkg/storage"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Expected backend %q, got %q", BackendFile, cfg.Storage.Backend)
	}
	if cfg.Storage.Key != storage.DefaultKey {
		t.Errorf("Expected key %q, got %q", storage.DefaultKey, cfg.Storage.Key)
	}
	if !cfg.UI.Mouse || !cfg.UI.AltScreen {
		t.Error("Mouse and alt screen should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid sqlite",
			modify: func(c *Config) { c.Storage.Backend = BackendSQLite },
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Storage.Backend = "redis" },
			wantErr: "storage.backend must be one of: file sqlite memory",
		},
		{
			name:    "missing backend",
			modify:  func(c *Config) { c.Storage.Backend = "" },
			wantErr: "storage.backend is required",
		},
		{
			name:    "missing key",
			modify:  func(c *Config) { c.Storage.Key = "" },
			wantErr: "storage.key is required",
		},
		{
			name:    "negative max length",
			modify:  func(c *Config) { c.Memos.MaxContentLength = -1 },
			wantErr: "memos.maxcontentlength must be at least 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Storage.Backend != BackendFile {
			t.Errorf("Expected default backend, got %q", cfg.Storage.Backend)
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `storage:
  backend: sqlite
  path: /tmp/memos.db
memos:
  max_content_length: 500
ui:
  mouse: false
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Storage.Backend != BackendSQLite {
			t.Errorf("Expected sqlite backend, got %q", cfg.Storage.Backend)
		}
		if cfg.Storage.Path != "/tmp/memos.db" {
			t.Errorf("Unexpected path %q", cfg.Storage.Path)
		}
		if cfg.Storage.Key != "memos" {
			t.Errorf("Key should keep its default, got %q", cfg.Storage.Key)
		}
		if cfg.Memos.MaxContentLength != 500 {
			t.Errorf("Expected max length 500, got %d", cfg.Memos.MaxContentLength)
		}
		if cfg.UI.Mouse {
			t.Error("Mouse should be disabled")
		}
		if !cfg.UI.AltScreen {
			t.Error("AltScreen should keep its default")
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("storage:\n  engine: file\n"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Expected error for unknown field")
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0600); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "storage.backend") {
			t.Errorf("Expected backend validation error, got %v", err)
		}
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Storage.Backend = BackendMemory
	cfg.Memos.MaxContentLength = 42

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp")); len(leftovers) != 0 {
		t.Errorf("Temp files should not remain after save: %v", leftovers)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestOpenKV(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		path    string
	}{
		{BackendFile, filepath.Join(dir, "memos.json")},
		{BackendSQLite, filepath.Join(dir, "memos.db")},
		{BackendMemory, ""},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := Default()
			cfg.Storage.Backend = tt.backend
			cfg.Storage.Path = tt.path

			kv, err := cfg.OpenKV()
			if err != nil {
				t.Fatalf("OpenKV failed: %v", err)
			}
			if c, ok := kv.(io.Closer); ok {
				defer c.Close()
			}

			if err := kv.Set("k", "v"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, ok, err := kv.Get("k")
			if err != nil || !ok || got != "v" {
				t.Errorf("Get = %q, %v, %v", got, ok, err)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Backend = "redis"
		if _, err := cfg.OpenKV(); err == nil {
			t.Error("Expected error for unknown backend")
		}
	})
}
