package flow

import (
	"context"
	"strings"
	"testing"

	"github.com/BTreeMap/FitTrack/internal/metrics"
)

// fixedWeather is a weather.Provider fake.
type fixedWeather struct {
	temp *float64
	err  error
}

func (f fixedWeather) CurrentTemp(ctx context.Context, city string) (*float64, error) {
	return f.temp, f.err
}

func tempPtr(t float64) *float64 { return &t }

func TestProfileWizardHappyPath(t *testing.T) {
	ctx := context.Background()
	registry := metrics.NewRegistry()
	w := NewProfileWizard("alice", registry, fixedWeather{temp: tempPtr(26)})

	if got := w.Start(ctx); !strings.Contains(got, "weight") {
		t.Fatalf("expected weight prompt, got %q", got)
	}

	steps := []struct {
		input    string
		expect   string
		terminal bool
	}{
		{"70", "height", false},
		{"175", "age", false},
		{"30", "gender", false},
		{"m", "activity", false},
		{"30", "city", false},
		{"Lisbon", "Computed calorie goal: 2555", false},
		{"use computed", "Profile saved", true},
	}
	for _, s := range steps {
		reply, done := w.HandleInput(ctx, s.input)
		if !strings.Contains(reply, s.expect) {
			t.Fatalf("input %q: expected reply containing %q, got %q", s.input, s.expect, reply)
		}
		if done != s.terminal {
			t.Fatalf("input %q: expected done=%v", s.input, s.terminal)
		}
	}

	snap := registry.Snapshot("alice")
	if snap.Profile == nil {
		t.Fatal("expected committed profile")
	}
	if snap.Profile.WeightKg != 70 || snap.Profile.City != "Lisbon" {
		t.Errorf("unexpected profile %+v", snap.Profile)
	}
	if snap.CalorieGoalKcal != 2555 {
		t.Errorf("expected computed calorie goal 2555, got %d", snap.CalorieGoalKcal)
	}
	// 70*30 + one activity step + warm-weather bonus.
	if snap.WaterGoalMl != 3100 {
		t.Errorf("expected water goal 3100, got %d", snap.WaterGoalMl)
	}
}

func TestProfileWizardRepromptKeepsAnswers(t *testing.T) {
	ctx := context.Background()
	registry := metrics.NewRegistry()
	w := NewProfileWizard("bob", registry, fixedWeather{})
	w.Start(ctx)

	if reply, done := w.HandleInput(ctx, "five"); done || !strings.Contains(reply, "20 to 300") {
		t.Fatalf("expected weight re-prompt, got %q", reply)
	}
	// Comma decimal separator is accepted.
	if reply, _ := w.HandleInput(ctx, "70,5"); !strings.Contains(reply, "height") {
		t.Fatalf("expected advance to height, got %q", reply)
	}
	if reply, done := w.HandleInput(ctx, "999"); done || !strings.Contains(reply, "100 to 250") {
		t.Fatalf("expected height re-prompt, got %q", reply)
	}
	if reply, _ := w.HandleInput(ctx, "180"); !strings.Contains(reply, "age") {
		t.Fatalf("expected advance to age, got %q", reply)
	}

	// Earlier answers survived both re-prompts.
	if w.weightKg != 70.5 || w.heightCm != 180 {
		t.Errorf("collected answers lost: weight=%g height=%g", w.weightKg, w.heightCm)
	}
}

func TestProfileWizardGenderValidation(t *testing.T) {
	ctx := context.Background()
	w := NewProfileWizard("bob", metrics.NewRegistry(), fixedWeather{})
	w.Start(ctx)
	w.HandleInput(ctx, "70")
	w.HandleInput(ctx, "175")
	w.HandleInput(ctx, "30")

	if reply, done := w.HandleInput(ctx, "yes"); done || !strings.Contains(reply, "м, ж, m or f") {
		t.Fatalf("expected gender re-prompt, got %q", reply)
	}
	if reply, _ := w.HandleInput(ctx, "Ж"); !strings.Contains(reply, "activity") {
		t.Fatalf("expected advance past gender, got %q", reply)
	}
}

func TestProfileWizardManualGoalValidation(t *testing.T) {
	ctx := context.Background()
	registry := metrics.NewRegistry()
	// Weather lookup failure degrades to unknown temperature.
	w := NewProfileWizard("carol", registry, fixedWeather{err: context.DeadlineExceeded})
	w.Start(ctx)
	for _, in := range []string{"60", "165", "25", "f", "0"} {
		w.HandleInput(ctx, in)
	}
	reply, _ := w.HandleInput(ctx, "Lisbon")
	if !strings.Contains(reply, "Could not fetch the weather") {
		t.Fatalf("expected weather failure notice, got %q", reply)
	}

	if reply, done := w.HandleInput(ctx, "900"); done || !strings.Contains(reply, "1000 to 5000") {
		t.Fatalf("expected goal re-prompt, got %q", reply)
	}
	reply, done := w.HandleInput(ctx, "1800")
	if !done || !strings.Contains(reply, "Calories: 1800") {
		t.Fatalf("expected commit with manual goal, got %q", reply)
	}

	snap := registry.Snapshot("carol")
	if snap.CalorieGoalKcal != 1800 {
		t.Errorf("expected manual goal 1800, got %d", snap.CalorieGoalKcal)
	}
	// No activity steps and no known temperature: base water goal only.
	if snap.WaterGoalMl != 1800 {
		t.Errorf("expected water goal 1800, got %d", snap.WaterGoalMl)
	}
}
