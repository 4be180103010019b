// Package config loads depcycle configuration from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for depcycle.
type Config struct {
	// CellWidth is the column width of rendered matrix cells.
	CellWidth int `yaml:"cell_width" env:"DEPCYCLE_CELL_WIDTH"`

	// CacheEnabled turns on the on-disk analysis cache.
	CacheEnabled bool `yaml:"cache_enabled" env:"DEPCYCLE_CACHE_ENABLED"`

	// CacheDir is where cached analysis entries are stored.
	CacheDir string `yaml:"cache_dir" env:"DEPCYCLE_CACHE_DIR"`

	// SourceFallback enables recovering statement metadata from the C
	// source when the candl output has no statement information block.
	SourceFallback bool `yaml:"source_fallback" env:"DEPCYCLE_SOURCE_FALLBACK"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"DEPCYCLE_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CellWidth:      10,
		CacheEnabled:   false,
		CacheDir:       defaultCacheDir(),
		SourceFallback: true,
		Verbose:        false,
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".depcycle/cache"
	}
	return filepath.Join(home, ".depcycle", "cache")
}

// globalConfigFilePath returns the global config file path.
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".depcycle/config.yaml"
	}
	return filepath.Join(home, ".depcycle", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path.
func projectConfigFilePath() string {
	return ".depcycle/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.depcycle/config.yaml)
// 3. Global config (~/.depcycle/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalPath, err)
		}
	}

	projectPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if data, err := os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// SaveGlobal writes the configuration to the global config path and
// returns that path.
func (c *Config) SaveGlobal() (string, error) {
	path := globalConfigFilePath()
	return path, c.Save(path)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DEPCYCLE_CELL_WIDTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			cfg.CellWidth = i
		}
	}
	if v := os.Getenv("DEPCYCLE_CACHE_ENABLED"); v != "" {
		cfg.CacheEnabled = isTruthy(v)
	}
	if v := os.Getenv("DEPCYCLE_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("DEPCYCLE_SOURCE_FALLBACK"); v != "" {
		cfg.SourceFallback = isTruthy(v)
	}
	if v := os.Getenv("DEPCYCLE_VERBOSE"); v != "" {
		cfg.Verbose = isTruthy(v)
	}
}

func isTruthy(v string) bool {
	return v == "true" || v == "1" || v == "yes"
}

// Validate checks that the configuration has valid required fields.
func (c *Config) Validate() error {
	if c.CellWidth <= 0 {
		return fmt.Errorf("cell_width must be positive")
	}
	if c.CellWidth > 120 {
		return fmt.Errorf("cell_width must be at most 120")
	}
	if c.CacheEnabled && c.CacheDir == "" {
		return fmt.Errorf("cache_dir is required when cache_enabled is set")
	}
	return nil
}
