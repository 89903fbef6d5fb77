// Package config loads the optional sift configuration file. Values only
// seed request defaults in the command layer; the engines never read it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".sift.yaml"

// Limits holds per-capability default limits.
type Limits struct {
	// Grep is the default maximum number of matching lines
	Grep int `yaml:"grep"`
	// Glob is the default maximum number of files
	Glob int `yaml:"glob"`
	// Read is the default number of lines per window
	Read int `yaml:"read"`
}

// Config represents sift configuration options.
type Config struct {
	// Limits are the defaults used when a call does not set its own
	Limits Limits `yaml:"limits"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// HistoryDB is the SQLite file searches are recorded to; empty disables history
	HistoryDB string `yaml:"history_db"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: Limits{
			Grep: 100,
			Glob: 100,
			Read: 200,
		},
		LogLevel: "warn",
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultFile.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.merge(file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays the non-zero values of other.
func (c *Config) merge(other Config) {
	if other.Limits.Grep != 0 {
		c.Limits.Grep = other.Limits.Grep
	}
	if other.Limits.Glob != 0 {
		c.Limits.Glob = other.Limits.Glob
	}
	if other.Limits.Read != 0 {
		c.Limits.Read = other.Limits.Read
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.HistoryDB != "" {
		c.HistoryDB = other.HistoryDB
	}
}

// Validate rejects negative limits and unknown log levels.
func (c *Config) Validate() error {
	if c.Limits.Grep < 0 || c.Limits.Glob < 0 || c.Limits.Read < 0 {
		return errors.New("limits must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
