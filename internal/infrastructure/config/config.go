// Package config loads engine defaults from the workspace configuration.
package config

import (
	"errors"

	"github.com/felixgeelhaar/planwright/pkg/storage"
)

// Config stores engine defaults outside the domain packages.
type Config struct {
	Reasoning ReasoningConfig `yaml:"reasoning"`
	Cost      CostConfig      `yaml:"cost"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ReasoningConfig holds reasoning collaborator knobs.
type ReasoningConfig struct {
	Provider       string `yaml:"provider"`
	MaxAttempts    int    `yaml:"max_attempts"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CostConfig holds the placeholder cost policy.
type CostConfig struct {
	UnitCost float64 `yaml:"unit_cost"`
}

// WatchConfig holds watch-mode knobs.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// Default returns the configuration used when the workspace has none.
func Default() *Config {
	return &Config{
		Reasoning: ReasoningConfig{MaxAttempts: 2, TimeoutSeconds: 300},
		Cost:      CostConfig{UnitCost: 10},
		Watch:     WatchConfig{DebounceMs: 500},
	}
}

// Load reads the workspace configuration, falling back to defaults when the
// file does not exist yet.
func Load(root string) (*Config, error) {
	repo := storage.NewFilesystemRepository(root)

	cfg := Default()
	if err := repo.LoadConfig(cfg); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Default(), nil
		}
		return nil, err
	}
	if cfg.Reasoning.MaxAttempts <= 0 {
		cfg.Reasoning.MaxAttempts = 2
	}
	if cfg.Reasoning.TimeoutSeconds <= 0 {
		cfg.Reasoning.TimeoutSeconds = 300
	}
	if cfg.Cost.UnitCost <= 0 {
		cfg.Cost.UnitCost = 10
	}
	if cfg.Watch.DebounceMs <= 0 {
		cfg.Watch.DebounceMs = 500
	}
	return cfg, nil
}

// Save writes the workspace configuration.
func Save(root string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	repo := storage.NewFilesystemRepository(root)
	return repo.SaveConfig(cfg)
}
