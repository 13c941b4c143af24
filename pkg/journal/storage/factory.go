package storage

import (
	"fmt"

	"mercator-hq/folio/pkg/config"
	"mercator-hq/folio/pkg/journal"
)

// New creates the backend named by cfg.Backend.
func New(cfg config.JournalConfig) (journal.Storage, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite", "":
		return NewSQLiteStorage(SQLiteConfig{
			Path:         cfg.SQLite.Path,
			MaxOpenConns: cfg.SQLite.MaxOpenConns,
			BusyTimeout:  cfg.SQLite.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Backend)
	}
}
