// Package config loads tool configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes from strings like "250ms" in
// both YAML and environment variables.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// UnmarshalText implements encoding.TextUnmarshaler, which is how the
// env parser fills Duration fields.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the tunables shared by the CLI commands. Zero values fall
// back to the defaults below.
type Config struct {
	// Workers is the band worker pool size. Zero means one per CPU.
	Workers int `yaml:"workers" env:"GOL_WORKERS"`
	// HistoryCapacity is the engine rewind depth.
	HistoryCapacity int `yaml:"history_capacity" env:"GOL_HISTORY_CAPACITY"`
	// TickRate is the cadence for continuous runs. Zero means uncapped.
	TickRate Duration `yaml:"tick_rate" env:"GOL_TICK_RATE"`
	// SaveDir is where result saves are written.
	SaveDir string `yaml:"save_dir" env:"GOL_SAVE_DIR"`
	// CatalogPath is the SQLite save catalog. Empty disables cataloging.
	CatalogPath string `yaml:"catalog_path" env:"GOL_CATALOG_PATH"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HistoryCapacity: 64,
		SaveDir:         "saves",
	}
}

// Load reads the YAML file at path, if present, and applies environment
// overrides on top. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
