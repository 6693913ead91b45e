// Package config loads the service configuration from a YAML file, writing a
// default file on first run.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	ListenAddr   string         `yaml:"listenAddr"`
	DatabasePath string         `yaml:"databasePath"`
	Perenual     PerenualConfig `yaml:"perenual"`
}

type PerenualConfig struct {
	APIKey         string `yaml:"apiKey"`
	BaseURL        string `yaml:"baseURL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout returns the per-call deadline for remote catalog requests.
func (p PerenualConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Default is what gets written on first run.
var Default = Config{
	ListenAddr:   ":8080",
	DatabasePath: "db.sqlite",
	Perenual: PerenualConfig{
		BaseURL:        "https://perenual.com/api",
		TimeoutSeconds: 10,
	},
}

// Load reads the config at path. When the file does not exist, the defaults
// are written there and returned, so a fresh checkout runs without setup.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default
		data, err := yaml.Marshal(&cfg)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Perenual.TimeoutSeconds <= 0 {
		cfg.Perenual.TimeoutSeconds = Default.Perenual.TimeoutSeconds
	}
	return &cfg, nil
}
