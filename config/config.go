package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/filecab/filecab/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultAddr is the listen address of the HTTP API
	DefaultAddr = ":8080"

	// DefaultShutdownTimeout bounds graceful HTTP shutdown
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultMaxSearchResults caps one search response; 0 means unlimited
	DefaultMaxSearchResults = 0

	// DefaultLogLvl is the default logging verbosity
	DefaultLogLvl = util.InfoLevel
)

// DefaultAllowedOrigins permits any origin; deployments narrow this via the
// config file.
var DefaultAllowedOrigins = []string{"*"}

// Config contains runtime configuration values for the catalog server.
type Config struct {
	Addr             string        // HTTP listen address (Default ":8080")
	LogLvl           util.LogLevel // Logging verbosity (Default info)
	AllowedOrigins   []string      // CORS allowed origins (Default any)
	SeedPath         string        // Optional path to a seed definitions file loaded at startup
	MaxSearchResults int           // Maximum matches returned per search; 0 = unlimited
	ShutdownTimeout  time.Duration // Graceful shutdown bound (Default 10s)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions. ShutdownTimeout is expressed in whole seconds in files.
type ConfigOverride struct {
	Addr             *string        `yaml:"addr,omitempty" json:"addr,omitempty"`
	LogLvl           *util.LogLevel `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	AllowedOrigins   []string       `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty"`
	SeedPath         *string        `yaml:"seed_path,omitempty" json:"seed_path,omitempty"`
	MaxSearchResults *int           `yaml:"max_search_results,omitempty" json:"max_search_results,omitempty"`
	ShutdownTimeout  *int           `yaml:"shutdown_timeout,omitempty" json:"shutdown_timeout,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		Addr:             DefaultAddr,
		LogLvl:           DefaultLogLvl,
		AllowedOrigins:   DefaultAllowedOrigins,
		MaxSearchResults: DefaultMaxSearchResults,
		ShutdownTimeout:  DefaultShutdownTimeout,
	}
}

// NewConfig creates a Config from defaults with the override applied.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config. This allows
// partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Addr != nil {
		c.Addr = *override.Addr
	}
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
	if override.AllowedOrigins != nil {
		c.AllowedOrigins = override.AllowedOrigins
	}
	if override.SeedPath != nil {
		c.SeedPath = *override.SeedPath
	}
	if override.MaxSearchResults != nil {
		c.MaxSearchResults = *override.MaxSearchResults
	}
	if override.ShutdownTimeout != nil {
		c.ShutdownTimeout = time.Duration(*override.ShutdownTimeout) * time.Second
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
