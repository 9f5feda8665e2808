// Package commands implements the CheckDeck subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/checkdeck-io/checkdeck/internal/cli/config"
	"github.com/checkdeck-io/checkdeck/internal/seed"
	"github.com/checkdeck-io/checkdeck/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  *state.SQLStore
}

// NewCommandContext opens the configured store and runs pending
// migrations. Returns the context and a cleanup function that must be
// called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
	}, cleanup, nil
}

// Seeder returns a template catalog seeder bound to the open store.
func (cc *CommandContext) Seeder() *seed.Seeder {
	return seed.New(cc.Store, cc.Logger)
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables with defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		Dialect:    getEnvOrDefault("CHECKDECK_DIALECT", config.DefaultDialect),
		DSN:        getEnvOrDefault("CHECKDECK_DSN", config.DefaultDSN),
		Port:       config.DefaultPort,
		Watch:      config.DefaultWatch,
		CatalogDir: os.Getenv("CHECKDECK_CATALOG_DIR"),
		Verbose:    os.Getenv("CHECKDECK_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStore opens the configured database and applies migrations.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLStore, error) {
	// Ensure the parent directory exists for file-backed sqlite
	if cfg.Dialect == state.DialectSQLite && cfg.DSN != ":memory:" {
		dir := filepath.Dir(cfg.DSN)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	store := state.New(logger)
	if err := store.Open(cfg.Dialect, cfg.DSN); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
