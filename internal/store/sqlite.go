// Package store provides backends for the local food dataset.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/BTreeMap/FitTrack/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore is the SQLite-backed food dataset.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) an SQLite dataset at the DSN path,
// applies migrations, and seeds the table from the embedded dataset when empty.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run SQLite migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("SQLiteStore ready", "path", cfg.DSN)
	return s, nil
}

// seedIfEmpty inserts the embedded dataset when the foods table has no rows.
// Rows are inserted in seed order so the rowid preserves insertion order.
func (s *SQLiteStore) seedIfEmpty() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM foods`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count food rows: %w", err)
	}
	if count > 0 {
		slog.Debug("SQLiteStore seed skipped, table populated", "count", count)
		return nil
	}

	entries, err := loadSeed()
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.Exec(`INSERT INTO foods (name, kcal_per_100g) VALUES (?, ?)`, e.Name, e.KcalPer100g); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed food %q: %w", e.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	slog.Info("SQLiteStore seeded food dataset", "count", len(entries))
	return nil
}

// Exact matches the normalized product name exactly.
func (s *SQLiteStore) Exact(ctx context.Context, name string) (*models.FoodInfo, error) {
	key := normalizeKey(name)
	var info models.FoodInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT name, kcal_per_100g FROM foods WHERE name = ?`, key,
	).Scan(&info.Name, &info.CaloriesPer100g)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore Exact query failed", "error", err, "name", key)
		return nil, fmt.Errorf("failed to query food %q: %w", key, err)
	}
	return &info, nil
}

// Substring returns the first entry in insertion order whose name contains
// the query or is contained in it.
func (s *SQLiteStore) Substring(ctx context.Context, name string) (*models.FoodInfo, error) {
	key := normalizeKey(name)
	if key == "" {
		return nil, nil
	}
	var info models.FoodInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT name, kcal_per_100g FROM foods
		 WHERE instr(?, name) > 0 OR instr(name, ?) > 0
		 ORDER BY id LIMIT 1`, key, key,
	).Scan(&info.Name, &info.CaloriesPer100g)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore Substring query failed", "error", err, "name", key)
		return nil, fmt.Errorf("failed to query food %q: %w", key, err)
	}
	return &info, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }
