// Package config provides configuration management for the CheckDeck CLI.
//
// Configuration is assembled from four layers, lowest to highest
// precedence: built-in defaults, a checkdeck.yaml/.yml file (searched
// upward from the working directory), CHECKDECK_ environment variables,
// and explicitly-set CLI flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	Dialect    string      `koanf:"dialect"`
	DSN        string      `koanf:"dsn"`
	Port       int         `koanf:"port"`
	Watch      bool        `koanf:"watch"`
	CatalogDir string      `koanf:"catalog_dir"`
	Timezone   string      `koanf:"timezone"`
	Verbose    bool        `koanf:"verbose"`
	Auth       *AuthConfig `koanf:"auth"`
}

// AuthConfig holds the hosted identity provider settings.
// All three fields empty means authentication is disabled and the
// server runs in single-user local mode.
type AuthConfig struct {
	ProviderURL   string `koanf:"provider_url"`
	APIKey        string `koanf:"api_key"`
	SessionSecret string `koanf:"session_secret"`
}

// GetAuthConfig returns the auth config, never nil.
func (c *Config) GetAuthConfig() *AuthConfig {
	if c.Auth == nil {
		return &AuthConfig{}
	}
	return c.Auth
}

// Default configuration values.
const (
	DefaultDialect = "sqlite"
	DefaultDSN     = ".checkdeck/checkdeck.db"
	DefaultPort    = 8765
	DefaultWatch   = true
)
