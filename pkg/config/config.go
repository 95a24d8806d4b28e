// Package config loads and validates memopad's YAML configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var validate = validator.New()

// Config is the complete memopad configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Memos   MemosConfig   `yaml:"memos"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects the key/value medium.
type StorageConfig struct {
	// Backend is one of file, sqlite or memory
	Backend string `yaml:"backend" validate:"required,oneof=file sqlite memory"`
	// Path of the file or database; empty selects a default under ~/.memopad
	Path string `yaml:"path"`
	// Key the memo list is stored under
	Key string `yaml:"key" validate:"required,max=256"`
}

// MemosConfig holds content rules.
type MemosConfig struct {
	// MaxContentLength limits memo content in characters; 0 means unlimited
	MaxContentLength int `yaml:"max_content_length" validate:"min=0"`
}

// UIConfig holds terminal UI options.
type UIConfig struct {
	Mouse     bool `yaml:"mouse"`
	AltScreen bool `yaml:"alt_screen"`
}

// LoggingConfig holds logging options.
type LoggingConfig struct {
	// Dir overrides ~/.memopad/logs
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Key:     "memos",
		},
		UI: UIConfig{
			Mouse:     true,
			AltScreen: true,
		},
	}
}

// Validate checks the configuration's struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError turns validator errors into one readable error.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Namespace())
	field = strings.TrimPrefix(field, "config.")

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
