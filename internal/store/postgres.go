// Package store provides backends for the local food dataset.
//
// This file implements the PostgreSQL-backed dataset for deployments that
// keep the reference dataset in a shared database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "embed"

	"github.com/BTreeMap/FitTrack/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore is the PostgreSQL-backed food dataset.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL, applies migrations, and seeds the
// foods table from the embedded dataset when empty.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run Postgres migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("PostgresStore ready")
	return s, nil
}

func (s *PostgresStore) seedIfEmpty() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM foods`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count food rows: %w", err)
	}
	if count > 0 {
		slog.Debug("PostgresStore seed skipped, table populated", "count", count)
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
		if _, err := tx.Exec(`INSERT INTO foods (name, kcal_per_100g) VALUES ($1, $2)`, e.Name, e.KcalPer100g); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed food %q: %w", e.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	slog.Info("PostgresStore seeded food dataset", "count", len(entries))
	return nil
}

// Exact matches the normalized product name exactly.
func (s *PostgresStore) Exact(ctx context.Context, name string) (*models.FoodInfo, error) {
	key := normalizeKey(name)
	var info models.FoodInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT name, kcal_per_100g FROM foods WHERE name = $1`, key,
	).Scan(&info.Name, &info.CaloriesPer100g)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore Exact query failed", "error", err, "name", key)
		return nil, fmt.Errorf("failed to query food %q: %w", key, err)
	}
	return &info, nil
}

// Substring returns the first entry in insertion order whose name contains
// the query or is contained in it.
func (s *PostgresStore) Substring(ctx context.Context, name string) (*models.FoodInfo, error) {
	key := normalizeKey(name)
	if key == "" {
		return nil, nil
	}
	var info models.FoodInfo
	err := s.db.QueryRowContext(ctx,
		`SELECT name, kcal_per_100g FROM foods
		 WHERE strpos($1, name) > 0 OR strpos(name, $1) > 0
		 ORDER BY id LIMIT 1`, key,
	).Scan(&info.Name, &info.CaloriesPer100g)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore Substring query failed", "error", err, "name", key)
		return nil, fmt.Errorf("failed to query food %q: %w", key, err)
	}
	return &info, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error { return s.db.Close() }
