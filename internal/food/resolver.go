// Package food resolves free-text product names to calories per 100 g.
//
// Resolution is an ordered fallback chain: exact match against the local
// dataset, substring match against the local dataset, then external lookup
// services in order. The first stage that produces a result wins. Lookup
// failures are never fatal; they fall through to the next stage.
package food

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/BTreeMap/FitTrack/internal/models"
	"github.com/BTreeMap/FitTrack/internal/store"
)

// Lookup is an external food lookup service.
// Implementations return (nil, nil) when the service has no usable result.
type Lookup interface {
	Search(ctx context.Context, product string) (*models.FoodInfo, error)
}

// Resolver runs the fallback chain over the local dataset and external lookups.
type Resolver struct {
	dataset store.FoodStore
	lookups []Lookup
}

// NewResolver creates a Resolver. Lookups are tried in the order given.
func NewResolver(dataset store.FoodStore, lookups ...Lookup) *Resolver {
	slog.Debug("Creating food Resolver", "lookups", len(lookups))
	return &Resolver{dataset: dataset, lookups: lookups}
}

// Resolve returns the resolved product or (nil, nil) when nothing matched.
// A result with zero calories is returned as-is; callers treat it as
// not-found and fall back to manual entry.
func (r *Resolver) Resolve(ctx context.Context, product string) (*models.FoodInfo, error) {
	info, err := r.dataset.Exact(ctx, product)
	if err != nil {
		slog.Error("Resolver dataset exact lookup failed", "error", err, "product", product)
	} else if info != nil {
		slog.Debug("Resolver exact dataset hit", "product", product, "kcal", info.CaloriesPer100g)
		return &models.FoodInfo{Name: capitalize(product), CaloriesPer100g: info.CaloriesPer100g}, nil
	}

	info, err = r.dataset.Substring(ctx, product)
	if err != nil {
		slog.Error("Resolver dataset substring lookup failed", "error", err, "product", product)
	} else if info != nil {
		slog.Debug("Resolver substring dataset hit", "product", product, "match", info.Name)
		return &models.FoodInfo{Name: capitalize(info.Name), CaloriesPer100g: info.CaloriesPer100g}, nil
	}

	for _, lookup := range r.lookups {
		info, err := lookup.Search(ctx, product)
		if err != nil {
			slog.Warn("Resolver external lookup failed, falling through", "error", err, "product", product)
			continue
		}
		if info != nil {
			return info, nil
		}
	}

	slog.Debug("Resolver found no result", "product", product)
	return nil, nil
}

// capitalize upper-cases the first rune for display, like the original dataset names.
func capitalize(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// isASCII reports whether the string contains only ASCII runes.
func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
