package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Storage
	PhotosDir  string   `yaml:"photos_dir"`
	Extensions []string `yaml:"extensions"`

	// Relay client
	RelayEndpoint string   `yaml:"relay_endpoint"`
	RelayAPIKey   string   `yaml:"relay_api_key"`
	RelayToken    string   `yaml:"relay_token"`
	Recipients    []string `yaml:"recipients"`
	Subject       string   `yaml:"subject"`
	FromName      string   `yaml:"from_name"`
	AutoSend      bool     `yaml:"auto_send"`
	RelayTimeout  int      `yaml:"relay_timeout_seconds"`

	// Ingest
	InboxDir        string   `yaml:"inbox_dir"`
	IngestPatterns  []string `yaml:"ingest_patterns"`
	WatchDebounceMS int      `yaml:"watch_debounce_ms"`

	// UI Settings
	DisplayDateFormat string `yaml:"display_date_format"`
	ColorTheme        string `yaml:"color_theme"`
	Viewer            string `yaml:"viewer"`
	TableWidth        int    `yaml:"table_width"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		PhotosDir:         "",
		Extensions:        []string{".jpg", ".jpeg"},
		RelayEndpoint:     "",
		RelayAPIKey:       "",
		RelayToken:        "",
		Recipients:        []string{},
		Subject:           "Registro de segurança",
		FromName:          "App Security Cam",
		AutoSend:          false,
		RelayTimeout:      30,
		InboxDir:          "",
		IngestPatterns:    []string{"*.jpg", "*.jpeg"},
		WatchDebounceMS:   500,
		DisplayDateFormat: "2006-01-02 15:04:05",
		ColorTheme:        "auto",
		Viewer:            "",
		TableWidth:        0,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file means defaults
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for essential values if missing
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".jpg", ".jpeg"}
	}
	if len(cfg.IngestPatterns) == 0 {
		cfg.IngestPatterns = []string{"*.jpg", "*.jpeg"}
	}
	if cfg.Recipients == nil {
		cfg.Recipients = []string{}
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.RelayTimeout <= 0 {
		cfg.RelayTimeout = 30
	}
	if cfg.DisplayDateFormat == "" {
		cfg.DisplayDateFormat = "2006-01-02 15:04:05"
	}
	if !isValidTheme(cfg.ColorTheme) {
		cfg.ColorTheme = "auto"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may carry relay credentials
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// RelayConfigured reports whether send can reach a relay
func (c *Config) RelayConfigured() bool {
	return c.RelayEndpoint != "" && c.RelayToken != ""
}

func isValidTheme(theme string) bool {
	switch theme {
	case "auto", "dark", "light":
		return true
	}
	return false
}
