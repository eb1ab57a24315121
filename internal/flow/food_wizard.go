package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BTreeMap/FitTrack/internal/metrics"
	"github.com/BTreeMap/FitTrack/internal/models"
)

// FoodResolver resolves a free-text product name to calories per 100 g.
// (nil, nil) means not found.
type FoodResolver interface {
	Resolve(ctx context.Context, product string) (*models.FoodInfo, error)
}

// FoodLogWizard drives the food-logging dialogue. The entry step resolves
// the product through the fallback chain; when resolution fails (or yields
// zero calories) the wizard asks for manual calories per 100 g before the
// grams question. The terminal transition logs the portion into the registry.
type FoodLogWizard struct {
	userID   string
	product  string
	state    models.StateType
	registry *metrics.Registry
	resolver FoodResolver
	pending  models.PendingFoodEntry
}

// NewFoodLogWizard creates a food-logging wizard for one user and product.
func NewFoodLogWizard(userID, product string, registry *metrics.Registry, resolver FoodResolver) *FoodLogWizard {
	return &FoodLogWizard{userID: userID, product: product, registry: registry, resolver: resolver}
}

// Type implements Wizard.
func (w *FoodLogWizard) Type() models.FlowType { return models.FlowTypeFoodLog }

// Start implements Wizard: it resolves the product and asks either for the
// portion size or, when unresolved, for manual calories.
func (w *FoodLogWizard) Start(ctx context.Context) string {
	w.state = models.StateFoodGrams

	info, err := w.resolver.Resolve(ctx, w.product)
	if err != nil {
		slog.Warn("FoodLogWizard resolution error, falling back to manual entry", "error", err, "user", w.userID, "product", w.product)
	}
	if info == nil || info.CaloriesPer100g == 0 {
		w.pending = models.PendingFoodEntry{Name: w.product, AwaitingManualCalories: true}
		slog.Debug("FoodLogWizard manual entry fallback", "user", w.userID, "product", w.product)
		return fmt.Sprintf("Could not find %q.\nEnter calories per 100 g manually, or /cancel:", w.product)
	}

	w.pending = models.PendingFoodEntry{
		Name:            info.Name,
		CaloriesPer100g: info.CaloriesPer100g,
		HasCalories:     true,
	}
	slog.Debug("FoodLogWizard product resolved", "user", w.userID, "name", info.Name, "kcal", info.CaloriesPer100g)
	return fmt.Sprintf("%s - %.0f kcal per 100 g.\nHow many grams? (or /cancel)", info.Name, info.CaloriesPer100g)
}

// HandleInput implements Wizard.
func (w *FoodLogWizard) HandleInput(ctx context.Context, input string) (string, bool) {
	text := strings.TrimSpace(input)

	if w.pending.AwaitingManualCalories {
		cal, err := parseDecimal(text)
		if err != nil || cal <= 0 {
			return "Enter a number (calories per 100 g):", false
		}
		w.pending.CaloriesPer100g = cal
		w.pending.HasCalories = true
		w.pending.AwaitingManualCalories = false
		return fmt.Sprintf("Calories set: %.0f kcal/100 g.\nHow many grams?", cal), false
	}

	grams, err := parseDecimal(text)
	if err != nil || grams < models.MinGrams || grams > models.MaxGrams {
		return "Enter a valid amount (1-5000 g):", false
	}

	snap, calories, err := w.registry.LogFood(w.userID, w.pending.Name, grams, w.pending.CaloriesPer100g)
	if err != nil {
		// Registry bounds mirror the wizard's, so this is unreachable in
		// practice; re-prompt instead of dropping the session.
		slog.Error("FoodLogWizard log failed", "error", err, "user", w.userID)
		return "Enter a valid amount (1-5000 g):", false
	}

	remaining := float64(snap.CalorieGoalKcal) - snap.LoggedCaloriesKcal + float64(snap.BurnedCaloriesKcal)
	if remaining < 0 {
		remaining = 0
	}
	w.pending = models.PendingFoodEntry{}
	return fmt.Sprintf(
		"Logged: %s - %.1f kcal\n\nConsumed: %.0f of %d kcal\nRemaining: %.0f kcal",
		snap.FoodHistory[len(snap.FoodHistory)-1].Name, calories,
		snap.LoggedCaloriesKcal, snap.CalorieGoalKcal, remaining), true
}

// Cancel implements Wizard: the pending entry is discarded.
func (w *FoodLogWizard) Cancel() string {
	w.pending = models.PendingFoodEntry{}
	slog.Debug("FoodLogWizard cancelled", "user", w.userID)
	return "Food log cancelled."
}
