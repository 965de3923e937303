// Package config provides reading and writing of docbridge configuration.
// Supports both global (~/.docbridge/config.yaml) and local (.docbridge/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.docbridge/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .docbridge/config.yaml
	ScopeLocal
)

// Author represents the author metadata used for audit attribution.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Credentials holds credential storage configuration options.
type Credentials struct {
	Dir string `yaml:"dir,omitempty"`
}

// Provider holds external provider configuration options.
type Provider struct {
	Timeout *string `yaml:"timeout,omitempty"`
}

// DefaultProviderTimeout is applied to every external provider call when
// provider.timeout is not configured.
const DefaultProviderTimeout = 30 * time.Second

// Validation bounds for provider.timeout.
const (
	MinProviderTimeout = time.Second
	MaxProviderTimeout = 10 * time.Minute
)

// Config contains configuration for docbridge.
type Config struct {
	Author      Author      `yaml:"author,omitempty"`
	Credentials Credentials `yaml:"credentials,omitempty"`
	Provider    Provider    `yaml:"provider,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Provider.Timeout != nil {
		d, err := time.ParseDuration(*c.Provider.Timeout)
		if err != nil {
			return fmt.Errorf("%w: provider.timeout must be a duration like 30s or 2m, got %q",
				ErrInvalidValue, *c.Provider.Timeout)
		}
		if d < MinProviderTimeout || d > MaxProviderTimeout {
			return fmt.Errorf("%w: provider.timeout must be between %s and %s, got %s",
				ErrInvalidValue, MinProviderTimeout, MaxProviderTimeout, d)
		}
	}
	return nil
}

// AuthorName returns the configured audit author (defaults to empty).
func (c *Config) AuthorName() string {
	return c.Author.Name
}

// CredentialsDir returns the configured credentials directory, or empty when
// unset (the caller applies flag/env/default resolution).
func (c *Config) CredentialsDir() string {
	return c.Credentials.Dir
}

// ProviderTimeout returns the per-call deadline for external provider calls
// (defaults to 30s). Validate guarantees the stored value parses.
func (c *Config) ProviderTimeout() time.Duration {
	if c.Provider.Timeout == nil {
		return DefaultProviderTimeout
	}
	d, err := time.ParseDuration(*c.Provider.Timeout)
	if err != nil {
		return DefaultProviderTimeout
	}
	return d
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".docbridge", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.docbridge/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docbridge", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	// Check if local config exists
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	// Fall back to global
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
