// Package config loads the application configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	Serve   ServeConfig   `toml:"serve"`
}

// StorageConfig contains database settings.
type StorageConfig struct {
	Path string `toml:"path"` // SQLite database path
}

// APIConfig contains card-metadata API settings.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Key     string `toml:"key"` // optional, raises the rate limit
}

// ServeConfig contains REST server settings.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{Path: "tcg-metrics.db"},
		API:     APIConfig{BaseURL: "https://api.pokemontcg.io/v2"},
		Serve:   ServeConfig{Addr: ":8080"},
	}
}

func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tcg-metrics", "config.toml"), nil
}

// Load reads the configuration from disk. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
