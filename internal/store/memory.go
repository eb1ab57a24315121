// Package store provides backends for the local food dataset.
//
// This file implements the in-memory backend, seeded from the embedded dataset.
package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/BTreeMap/FitTrack/internal/models"
)

// InMemoryStore holds the food dataset as an ordered slice.
type InMemoryStore struct {
	entries []seedEntry
}

// NewInMemoryStore creates an in-memory dataset seeded from the embedded file.
func NewInMemoryStore() (*InMemoryStore, error) {
	entries, err := loadSeed()
	if err != nil {
		slog.Error("InMemoryStore seed load failed", "error", err)
		return nil, err
	}
	slog.Debug("InMemoryStore seeded", "count", len(entries))
	return &InMemoryStore{entries: entries}, nil
}

// Exact matches the normalized product name exactly.
func (s *InMemoryStore) Exact(ctx context.Context, name string) (*models.FoodInfo, error) {
	key := normalizeKey(name)
	for _, e := range s.entries {
		if e.Name == key {
			return &models.FoodInfo{Name: e.Name, CaloriesPer100g: e.KcalPer100g}, nil
		}
	}
	return nil, nil
}

// Substring returns the first entry, in insertion order, whose key contains
// the query or is contained in it.
func (s *InMemoryStore) Substring(ctx context.Context, name string) (*models.FoodInfo, error) {
	key := normalizeKey(name)
	if key == "" {
		return nil, nil
	}
	for _, e := range s.entries {
		if strings.Contains(key, e.Name) || strings.Contains(e.Name, key) {
			return &models.FoodInfo{Name: e.Name, CaloriesPer100g: e.KcalPer100g}, nil
		}
	}
	return nil, nil
}

// Close is a no-op for the in-memory backend.
func (s *InMemoryStore) Close() error { return nil }
