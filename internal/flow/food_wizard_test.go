package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BTreeMap/FitTrack/internal/metrics"
	"github.com/BTreeMap/FitTrack/internal/models"
)

// fakeResolver is a FoodResolver fake.
type fakeResolver struct {
	info *models.FoodInfo
	err  error
}

func (f fakeResolver) Resolve(ctx context.Context, product string) (*models.FoodInfo, error) {
	return f.info, f.err
}

func TestFoodLogWizardResolvedPath(t *testing.T) {
	ctx := context.Background()
	registry := metrics.NewRegistry()
	w := NewFoodLogWizard("alice", "банан", registry,
		fakeResolver{info: &models.FoodInfo{Name: "Банан", CaloriesPer100g: 89}})

	opening := w.Start(ctx)
	if !strings.Contains(opening, "89 kcal per 100 g") {
		t.Fatalf("expected resolved opening, got %q", opening)
	}

	if reply, done := w.HandleInput(ctx, "many"); done || !strings.Contains(reply, "1-5000") {
		t.Fatalf("expected grams re-prompt, got %q", reply)
	}

	reply, done := w.HandleInput(ctx, "150")
	if !done {
		t.Fatal("expected terminal transition")
	}
	if !strings.Contains(reply, "133.5 kcal") {
		t.Errorf("expected 133.5 kcal logged, got %q", reply)
	}

	snap := registry.Snapshot("alice")
	if snap.LoggedCaloriesKcal != 133.5 {
		t.Errorf("expected accumulator 133.5, got %g", snap.LoggedCaloriesKcal)
	}
	if len(snap.FoodHistory) != 1 || snap.FoodHistory[0].Grams != 150 {
		t.Errorf("unexpected history %+v", snap.FoodHistory)
	}
}

func TestFoodLogWizardManualFallback(t *testing.T) {
	ctx := context.Background()
	registry := metrics.NewRegistry()
	w := NewFoodLogWizard("bob", "draniki", registry, fakeResolver{})

	opening := w.Start(ctx)
	if !strings.Contains(opening, "Could not find") {
		t.Fatalf("expected manual fallback opening, got %q", opening)
	}

	if reply, done := w.HandleInput(ctx, "-5"); done || !strings.Contains(reply, "calories per 100 g") {
		t.Fatalf("expected positive-calorie re-prompt, got %q", reply)
	}
	reply, done := w.HandleInput(ctx, "250")
	if done || !strings.Contains(reply, "How many grams?") {
		t.Fatalf("expected grams prompt after manual calories, got %q", reply)
	}

	reply, done = w.HandleInput(ctx, "200")
	if !done || !strings.Contains(reply, "500.0 kcal") {
		t.Fatalf("expected 500 kcal logged, got %q", reply)
	}
	if got := registry.Snapshot("bob").LoggedCaloriesKcal; got != 500 {
		t.Errorf("expected 500 kcal accumulated, got %g", got)
	}
}

func TestFoodLogWizardZeroCaloriesTreatedAsNotFound(t *testing.T) {
	w := NewFoodLogWizard("bob", "water", metrics.NewRegistry(),
		fakeResolver{info: &models.FoodInfo{Name: "Water", CaloriesPer100g: 0}})
	if opening := w.Start(context.Background()); !strings.Contains(opening, "Could not find") {
		t.Errorf("zero calories must fall back to manual entry, got %q", opening)
	}
}

func TestFoodLogWizardResolverErrorFallsBack(t *testing.T) {
	w := NewFoodLogWizard("bob", "банан", metrics.NewRegistry(),
		fakeResolver{err: errors.New("all services down")})
	if opening := w.Start(context.Background()); !strings.Contains(opening, "Could not find") {
		t.Errorf("resolver failure must fall back to manual entry, got %q", opening)
	}
}

func TestSessionManagerSingleActiveWizard(t *testing.T) {
	ctx := context.Background()
	registry := metrics.NewRegistry()
	s := NewSessionManager()

	first := NewProfileWizard("alice", registry, fixedWeather{})
	first.Start(ctx)
	s.Begin("alice", first)

	if w, ok := s.Active("alice"); !ok || w != Wizard(first) {
		t.Fatal("expected first wizard active")
	}

	// Starting another wizard replaces the previous session.
	second := NewFoodLogWizard("alice", "банан", registry, fakeResolver{})
	second.Start(ctx)
	s.Begin("alice", second)
	if w, _ := s.Active("alice"); w != Wizard(second) {
		t.Fatal("expected second wizard to replace the first")
	}

	reply, ok := s.Cancel("alice")
	if !ok || !strings.Contains(reply, "cancelled") {
		t.Fatalf("expected cancellation reply, got %q", reply)
	}
	if _, ok := s.Active("alice"); ok {
		t.Error("expected no active session after cancel")
	}
	if _, ok := s.Cancel("alice"); ok {
		t.Error("expected cancel of empty session to report none")
	}
}
