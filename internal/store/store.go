// Package store persists ledger state behind a small Storage interface.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theirongolddev/saku/internal/model"
)

// Storage loads and saves the whole ledger state.
//
// Load never fails the caller: a missing store yields the zero state and a
// nil error; an unreadable or malformed store yields the zero state and an
// error wrapping model.ErrPersistenceCorrupt, which callers report and move on.
type Storage interface {
	Load(ctx context.Context) (model.State, error)
	Save(ctx context.Context, st model.State) error
	Close() error
}

// Backend names a storage implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Valid reports whether b is a supported backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendJSON, BackendSQLite:
		return true
	default:
		return false
	}
}

// Config selects and locates a backend.
type Config struct {
	Backend Backend
	Path    string
	Logger  *slog.Logger
}

// Open returns the storage backend described by cfg.
func Open(cfg Config) (Storage, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	switch cfg.Backend {
	case BackendJSON, "":
		return NewFileStore(cfg.Path, cfg.Logger), nil
	case BackendSQLite:
		return OpenSQLite(cfg.Path, cfg.Logger)
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}
