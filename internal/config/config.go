// Package config provides configuration management for the resource pipeline.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Configuration validation errors.
var (
	ErrMissingEndpoint     = errors.New("catalog.endpoint is required")
	ErrInvalidEndpoint     = errors.New("catalog.endpoint must be a valid URL")
	ErrInvalidTimeout      = errors.New("catalog.timeout_sec must be at least 1")
	ErrInvalidCacheBackend = errors.New("cache.backend must be 'file' or 'sqlite'")
	ErrMissingCachePath    = errors.New("cache.path is required")
	ErrMissingDataDir      = errors.New("data.dir is required")
	ErrMissingOutputDir    = errors.New("output.dir is required")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog"`
	Cache    CacheConfig    `yaml:"cache"`
	Data     DataConfig     `yaml:"data"`
	Output   OutputConfig   `yaml:"output"`
	Mappings MappingsConfig `yaml:"mappings"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CatalogConfig contains settings for the remote catalog API.
type CatalogConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// GetTimeout returns the HTTP timeout duration.
func (cc *CatalogConfig) GetTimeout() time.Duration {
	return time.Duration(cc.TimeoutSec) * time.Second
}

// CacheConfig defines where fetched resources persist between runs.
type CacheConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// DataConfig points at the directory holding local source datasets.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig defines where artifacts land.
type OutputConfig struct {
	Dir           string `yaml:"dir"`
	WriteManifest bool   `yaml:"write_manifest"`
	WriteReport   bool   `yaml:"write_report"`
}

// MappingsConfig points at the field mapping tables. An empty path selects
// the built-in defaults.
type MappingsConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a configuration with workable defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Endpoint:   "https://swapi.py4e.com/api",
			UserAgent:  "resource-pipeline/1.0",
			TimeoutSec: 30,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Path:    "CACHE.json",
		},
		Data: DataConfig{
			Dir: "data",
		},
		Output: OutputConfig{
			Dir:           "output",
			WriteManifest: true,
			WriteReport:   true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from YAML file.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Catalog.Endpoint == "" {
		return ErrMissingEndpoint
	}

	parsed, err := url.Parse(c.Catalog.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.Catalog.Endpoint)
	}

	if c.Catalog.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Cache.Backend != BackendFile && c.Cache.Backend != BackendSQLite {
		return fmt.Errorf("%w: %q", ErrInvalidCacheBackend, c.Cache.Backend)
	}

	if c.Cache.Path == "" {
		return ErrMissingCachePath
	}

	if c.Data.Dir == "" {
		return ErrMissingDataDir
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Endpoint: %s, Cache: %s, Output: %s}",
		c.Catalog.Endpoint,
		c.Cache.Backend,
		c.Output.Dir,
	)
}
