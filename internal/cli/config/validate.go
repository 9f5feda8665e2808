package config

import (
	"fmt"
	"time"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Dialect {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported dialect %q (expected sqlite or postgres)", c.Dialect)
	}

	if c.DSN == "" {
		return fmt.Errorf("dsn is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}

	// Auth is all-or-nothing: a partially configured provider would
	// accept sign-ins it cannot validate.
	if a := c.Auth; a != nil {
		set := 0
		for _, v := range []string{a.ProviderURL, a.APIKey, a.SessionSecret} {
			if v != "" {
				set++
			}
		}
		if set != 0 && set != 3 {
			return fmt.Errorf("auth requires provider_url, api_key and session_secret together")
		}
	}

	return nil
}

// Location returns the configured timezone, or time.Local when unset.
// Validate must have accepted the config first.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
