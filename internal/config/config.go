package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration stored at ~/.domovnik/config.
type Config struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url,omitempty"`
	Username       string `yaml:"username,omitempty"`
	UserID         string `yaml:"user_id,omitempty"`
	PrefsCachePath string `yaml:"prefs_cache_path,omitempty"`
	Theme          string `yaml:"theme,omitempty"`
	VimKeys        bool   `yaml:"vim_keys"`
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".domovnik", "config")
}

// DefaultPrefsCachePath is where the view-preference cache lives when
// the config does not override it.
func DefaultPrefsCachePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".domovnik", "prefs.sqlite")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("config missing api_key")
	}

	return &cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
