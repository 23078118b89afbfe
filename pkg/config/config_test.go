package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != ".jpg" {
		t.Errorf("expected default Extensions=[.jpg .jpeg], got %v", cfg.Extensions)
	}

	if cfg.AutoSend {
		t.Error("expected AutoSend to default to false")
	}

	if cfg.WatchDebounceMS != 500 {
		t.Errorf("expected default WatchDebounceMS=500, got %d", cfg.WatchDebounceMS)
	}

	if cfg.RelayConfigured() {
		t.Error("default config should not have a relay configured")
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.DisplayDateFormat != "2006-01-02 15:04:05" {
		t.Errorf("expected default DisplayDateFormat, got %q", cfg.DisplayDateFormat)
	}
}

func TestSave_And_Load(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.RelayEndpoint = "https://relay.example.com/api/send-capture"
	cfg.RelayToken = "0123456789abcdef"
	cfg.Recipients = []string{"guard@example.com"}
	cfg.AutoSend = true

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
	if info.Mode().Perm()&0077 != 0 {
		t.Errorf("config file should not be group/world readable, got %v", info.Mode().Perm())
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.RelayEndpoint != cfg.RelayEndpoint {
		t.Errorf("RelayEndpoint: expected %q, got %q", cfg.RelayEndpoint, loaded.RelayEndpoint)
	}
	if !loaded.AutoSend {
		t.Error("AutoSend was not persisted")
	}
	if len(loaded.Recipients) != 1 || loaded.Recipients[0] != "guard@example.com" {
		t.Errorf("Recipients: got %v", loaded.Recipients)
	}
	if !loaded.RelayConfigured() {
		t.Error("expected relay to be configured after load")
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	yamlContent := `extensions: []
ingest_patterns: []
watch_debounce_ms: 0
relay_timeout_seconds: -1
display_date_format: ""
color_theme: neon
viewer: feh
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Extensions) != 2 {
		t.Errorf("expected default extensions, got %v", cfg.Extensions)
	}
	if len(cfg.IngestPatterns) != 2 {
		t.Errorf("expected default ingest patterns, got %v", cfg.IngestPatterns)
	}
	if cfg.WatchDebounceMS != 500 {
		t.Errorf("expected WatchDebounceMS=500, got %d", cfg.WatchDebounceMS)
	}
	if cfg.RelayTimeout != 30 {
		t.Errorf("expected RelayTimeout=30, got %d", cfg.RelayTimeout)
	}
	if cfg.DisplayDateFormat != "2006-01-02 15:04:05" {
		t.Errorf("expected default DisplayDateFormat, got %q", cfg.DisplayDateFormat)
	}
	if cfg.ColorTheme != "auto" {
		t.Errorf("expected invalid theme to fall back to auto, got %q", cfg.ColorTheme)
	}

	// Should preserve specified values
	if cfg.Viewer != "feh" {
		t.Errorf("expected Viewer='feh', got %q", cfg.Viewer)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("recipients: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected parse error for invalid YAML")
	}
}
