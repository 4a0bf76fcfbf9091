package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the booksearch configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	Path string `yaml:"path"` // "~" expands to the home directory
}

// FetchConfig holds HTTP fetch settings.
type FetchConfig struct {
	TimeoutSec int `yaml:"timeout_sec"`
	MaxBodyMB  int `yaml:"max_body_mb"`
}

// AnalysisConfig holds word-ranking settings.
type AnalysisConfig struct {
	TopWords       int      `yaml:"top_words"`
	ExtraStopWords []string `yaml:"extra_stop_words"` // merged into the default set
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from a YAML file. A missing file is not an
// error: defaults apply. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join("~", ".booksearch", "books.db")
	}
	if c.Fetch.TimeoutSec <= 0 {
		c.Fetch.TimeoutSec = 10
	}
	if c.Fetch.MaxBodyMB <= 0 {
		c.Fetch.MaxBodyMB = 10
	}
	if c.Analysis.TopWords <= 0 {
		c.Analysis.TopWords = 10
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Fetch.TimeoutSec > 300 {
		return fmt.Errorf("fetch.timeout_sec must be at most 300, got %d", c.Fetch.TimeoutSec)
	}
	return nil
}

// DatabasePath returns the storage path with a leading "~" expanded to the
// current user's home directory.
func (c *Config) DatabasePath() string {
	path := c.Storage.Path
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
