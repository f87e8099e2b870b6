// ABOUTME: Application configuration from environment, .env, and XDG defaults
// ABOUTME: Resolves seed path, logging, HTTP address, and table capabilities
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/harperreed/clientdesk/models"
)

// AppName names the XDG directories.
const AppName = "clientdesk"

type Config struct {
	// Seed is the client file loaded into each session. Empty means the XDG default.
	Seed     string `env:"CLIENTDESK_SEED"`
	Logger   Logger
	HTTPAddr string `env:"CLIENTDESK_HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	Features string `env:"CLIENTDESK_FEATURES" envDefault:"all"`
}

type Logger struct {
	Level  string `env:"CLIENTDESK_LOG_LEVEL" envDefault:"info"`
	Format string `env:"CLIENTDESK_LOG_FORMAT" envDefault:"text"`
	File   string `env:"CLIENTDESK_LOG_FILE"`
}

// Load reads an optional .env from the working directory, then the
// environment. A missing .env is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if _, err := cfg.Capabilities(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultSeedPath is where a seed file is looked for when none is configured.
func DefaultSeedPath() string {
	return filepath.Join(xdg.DataHome, AppName, "clients.json")
}

// SeedPath returns the configured seed file and whether it was set
// explicitly. An explicit path must exist; the default may be missing.
func (c *Config) SeedPath() (string, bool) {
	if c.Seed != "" {
		return c.Seed, true
	}
	return DefaultSeedPath(), false
}

// Capabilities parses Features.
func (c *Config) Capabilities() (models.Capabilities, error) {
	caps, err := models.ParseCapabilities(c.Features)
	if err != nil {
		return models.Capabilities{}, fmt.Errorf("invalid CLIENTDESK_FEATURES: %w", err)
	}
	return caps, nil
}

// LogFilePath resolves a relative log file under the XDG state directory.
func (c *Config) LogFilePath() string {
	if c.Logger.File == "" || filepath.IsAbs(c.Logger.File) {
		return c.Logger.File
	}
	return filepath.Join(xdg.StateHome, AppName, c.Logger.File)
}
