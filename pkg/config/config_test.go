package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Fetch.TimeoutSec != 10 {
		t.Errorf("expected default timeout 10, got %d", cfg.Fetch.TimeoutSec)
	}
	if cfg.Fetch.MaxBodyMB != 10 {
		t.Errorf("expected default max body 10, got %d", cfg.Fetch.MaxBodyMB)
	}
	if cfg.Analysis.TopWords != 10 {
		t.Errorf("expected default top words 10, got %d", cfg.Analysis.TopWords)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default level info, got %q", cfg.Logging.Level)
	}
	if !strings.Contains(cfg.Storage.Path, ".booksearch") {
		t.Errorf("expected default path under .booksearch, got %q", cfg.Storage.Path)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analysis.TopWords != 10 {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booksearch.yaml")
	content := `
storage:
  path: /tmp/test-books.db
fetch:
  timeout_sec: 5
analysis:
  top_words: 25
  extra_stop_words: [whale, ahab]
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/test-books.db" {
		t.Errorf("path not read: %q", cfg.Storage.Path)
	}
	if cfg.Fetch.TimeoutSec != 5 {
		t.Errorf("timeout not read: %d", cfg.Fetch.TimeoutSec)
	}
	if cfg.Fetch.MaxBodyMB != 10 {
		t.Errorf("unset field should default: %d", cfg.Fetch.MaxBodyMB)
	}
	if cfg.Analysis.TopWords != 25 {
		t.Errorf("top words not read: %d", cfg.Analysis.TopWords)
	}
	if len(cfg.Analysis.ExtraStopWords) != 2 {
		t.Errorf("extra stop words not read: %v", cfg.Analysis.ExtraStopWords)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level not read: %q", cfg.Logging.Level)
	}
}

func TestLoadInvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booksearch.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for bad level")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booksearch.yaml")
	if err := os.WriteFile(path, []byte("storage: [not: a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDatabasePathExpandsHome(t *testing.T) {
	cfg := Config{Storage: StorageConfig{Path: filepath.Join("~", ".booksearch", "books.db")}}
	got := cfg.DatabasePath()
	if strings.HasPrefix(got, "~") {
		t.Errorf("tilde not expanded: %q", got)
	}
	home, err := os.UserHomeDir()
	if err == nil && !strings.HasPrefix(got, home) {
		t.Errorf("expected path under %q, got %q", home, got)
	}
}

func TestDatabasePathAbsoluteUntouched(t *testing.T) {
	cfg := Config{Storage: StorageConfig{Path: "/var/lib/booksearch/books.db"}}
	if got := cfg.DatabasePath(); got != "/var/lib/booksearch/books.db" {
		t.Errorf("absolute path modified: %q", got)
	}
}
