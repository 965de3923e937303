// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the CLI interface where config is
// accessed by string keys (e.g., "provider.timeout").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set". This enables proper defaulting - we
// only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"time"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name",
		"credentials.dir",
		"provider.timeout",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "credentials.dir":
		return c.Credentials.Dir, nil
	case "provider.timeout":
		return c.ProviderTimeout().String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "credentials.dir":
		c.Credentials.Dir = value
	case "provider.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: provider.timeout must be a duration like 30s or 2m", ErrInvalidValue)
		}
		if d < MinProviderTimeout || d > MaxProviderTimeout {
			return fmt.Errorf("%w: provider.timeout must be between %s and %s",
				ErrInvalidValue, MinProviderTimeout, MaxProviderTimeout)
		}
		c.Provider.Timeout = &value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":      c.Author.Name,
		"credentials.dir":  c.Credentials.Dir,
		"provider.timeout": c.ProviderTimeout().String(),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "credentials.dir":
		return c.Credentials.Dir != ""
	case "provider.timeout":
		return c.Provider.Timeout != nil
	default:
		return false
	}
}
