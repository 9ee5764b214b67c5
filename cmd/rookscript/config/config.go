// Package config loads the optional engine-configuration file accepted by
// cmd/rookscript (SPEC_FULL.md §A): default stack sizes, the command
// runaway limit, and which namespaced host-function bundles to install.
// Parsed with github.com/goccy/go-yaml.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the root shape of a rookscript.yaml file.
type Config struct {
	ValueStackSize      int      `yaml:"valueStackSize"`
	ActivationStackSize int      `yaml:"activationStackSize"`
	RunawayLimit        int      `yaml:"runawayLimit"`
	Bundles             []string `yaml:"bundles"`
}

// Default returns a Config with the engine's built-in defaults.
func Default() *Config {
	return &Config{
		ValueStackSize:      1024,
		ActivationStackSize: 256,
		RunawayLimit:        1_000_000,
		Bundles:             []string{"corelib"},
	}
}

// Load reads and parses path, overlaying it onto Default() so that a
// config file only needs to mention the fields it overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
