// Package config loads the server configuration from an optional yaml file
// with environment overrides. A missing file falls back to defaults so the
// binary runs with nothing but DB_* variables set.
package config

import (
	"fmt"
	"os"

	"github.com/mismarcadores/scoreboard/internal/storage"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	NATS struct {
		// URL empty disables event publishing.
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Database storage.Config `yaml:"database"`
}

// Load reads the yaml file at path (if path is non-empty) and applies
// environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Database = storage.NewConfigFromEnv()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if url := os.Getenv("NATS_URL"); url != "" {
		cfg.NATS.URL = url
	}
	return cfg, nil
}
