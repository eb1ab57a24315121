// Package store provides backends for the local food dataset.
//
// The dataset maps lowercase product names to calories per 100 g and has a
// stable insertion order: substring lookups must return the first match in
// that order, so every backend preserves it (slice order in memory, the
// serial primary key in SQL).
package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BTreeMap/FitTrack/internal/models"
)

// FoodStore is a read-only lookup over the local food dataset.
// Lookups return (nil, nil) when no row matches.
type FoodStore interface {
	// Exact matches the trimmed, lowercased product name exactly.
	Exact(ctx context.Context, name string) (*models.FoodInfo, error)
	// Substring returns the first dataset entry, in insertion order, whose
	// key is a substring of the query or vice versa.
	Substring(ctx context.Context, name string) (*models.FoodInfo, error)
	Close() error
}

// Opts holds configuration for store backends.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// New selects a backend from the DSN: empty means the in-memory dataset,
// a PostgreSQL-looking DSN selects Postgres, anything else is treated as an
// SQLite file path.
func New(opts ...Option) (FoodStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.DSN == "":
		slog.Debug("store.New selected in-memory food dataset")
		return NewInMemoryStore()
	case isPostgresDSN(cfg.DSN):
		slog.Debug("store.New selected Postgres food dataset")
		return NewPostgresStore(opts...)
	default:
		slog.Debug("store.New selected SQLite food dataset", "path", cfg.DSN)
		return NewSQLiteStore(opts...)
	}
}

// isPostgresDSN reports whether the DSN looks like a PostgreSQL connection string.
func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// normalizeKey lowercases and trims a product name for dataset lookups.
func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
