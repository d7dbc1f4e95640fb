// Package config loads service configuration from NOTES_-prefixed
// environment variables.
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is the full service configuration.
type Config struct {
	HTTPPort    int    `envconfig:"HTTP_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// DBDriver selects the store backend: "sqlite" or "postgres".
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/notes.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"change-me-before-deploying"`

	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN"`

	MediaCloudName string `envconfig:"MEDIA_CLOUD_NAME"`
	MediaAPIKey    string `envconfig:"MEDIA_API_KEY"`
	MediaAPISecret string `envconfig:"MEDIA_API_SECRET"`
	MediaFolder    string `envconfig:"MEDIA_FOLDER" default:"notes"`

	DebugLogging bool `envconfig:"DEBUG_LOGGING" default:"false"`
}

// Load reads and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("NOTES", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment config")
	}
	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, errors.Errorf("unsupported NOTES_DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}
	if cfg.DBDriver == "postgres" && cfg.PostgresDSN == "" {
		return nil, errors.New("NOTES_POSTGRES_DSN is required when NOTES_DB_DRIVER=postgres")
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in development mode, which
// turns on diagnostic detail in error responses.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}
