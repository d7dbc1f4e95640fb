// Package factory builds the configured store driver.
package factory

import (
	"github.com/pkg/errors"

	"github.com/sradha-notes/backend/internal/config"
	"github.com/sradha-notes/backend/internal/store"
	"github.com/sradha-notes/backend/internal/store/postgres"
	"github.com/sradha-notes/backend/internal/store/sqlite"
)

// NewStore opens the store named by cfg.DBDriver.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		s, err := sqlite.New(cfg.SQLitePath)
		return s, errors.Wrap(err, "failed to open sqlite store")
	case "postgres":
		s, err := postgres.New(cfg.PostgresDSN)
		return s, errors.Wrap(err, "failed to open postgres store")
	default:
		return nil, errors.Errorf("unsupported store driver %q", cfg.DBDriver)
	}
}
