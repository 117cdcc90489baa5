// Package config loads the batch driver's YAML configuration, following
// the same default/load/save shape used elsewhere in the corpus for
// optional, file-backed overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI's tunable defaults. Every field has a sensible
// default so a missing or partial config file behaves like no file at all.
type Config struct {
	// DefaultQuality is used when the CLI's quality argument is absent,
	// out of range, or unrecognized.
	DefaultQuality float64 `yaml:"defaultQuality"`

	// Concurrency bounds how many images the batch driver compresses in
	// parallel. Each compression call is self-contained, so this only
	// parallelizes across distinct input images, never within one.
	Concurrency int `yaml:"concurrency"`

	// Archive, if true, additionally bundles a batch's output files into
	// a single tar+zstd archive after processing.
	Archive bool `yaml:"archive"`

	// EqualityTolerance overrides the pixel-equality distance (tau) that
	// pixelio.CompressFile uses to verify a written file round-trips back
	// to the rendered grid; the default matches the spec's magic constant
	// of 0.007.
	EqualityTolerance float64 `yaml:"equalityTolerance"`
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() *Config {
	return &Config{
		DefaultQuality:    0.5,
		Concurrency:       4,
		Archive:           false,
		EqualityTolerance: 0.007,
	}
}

// Load reads YAML configuration from path, starting from DefaultConfig and
// overwriting only the fields the file sets. A missing file is not an
// error: it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
