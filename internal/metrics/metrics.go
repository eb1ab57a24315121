// Package metrics implements the per-user daily metrics engine.
//
// A Registry keeps one UserMetrics record per user identity, created with
// default goals on first access. Every operation runs under that user's lock
// and applies the lazy daily reset first, so the read-modify-write of
// accumulators and the reset check-and-clear are atomic relative to other
// operations on the same user. Different users never contend on one lock.
package metrics

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BTreeMap/FitTrack/internal/calc"
	"github.com/BTreeMap/FitTrack/internal/models"
)

// Registry is the keyed store of per-user metrics.
type Registry struct {
	mu    sync.Mutex
	users map[string]*userEntry

	// now is the clock; replaced in tests to exercise the daily rollover.
	now func() time.Time
}

// userEntry serializes all operations against one user.
type userEntry struct {
	mu sync.Mutex
	m  models.UserMetrics
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]*userEntry),
		now:   time.Now,
	}
}

// entry returns the user's record, creating it with defaults on first access.
func (r *Registry) entry(userID string) *userEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.users[userID]
	if !ok {
		e = &userEntry{m: models.UserMetrics{
			WaterGoalMl:     models.DefaultWaterGoalMl,
			CalorieGoalKcal: models.DefaultCalorieGoalKcal,
			LastReset:       r.now(),
		}}
		r.users[userID] = e
		slog.Debug("Registry created user record", "user", userID)
	}
	return e
}

// withUser runs fn under the user's lock, after the lazy daily reset.
func (r *Registry) withUser(userID string, fn func(m *models.UserMetrics)) {
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	r.resetDaily(userID, &e.m)
	fn(&e.m)
}

// resetDaily zeroes the accumulators, clears both histories, and drops the
// workout water bonus when the record was last reset on an earlier calendar
// day. Goals and profile are untouched. Idempotent within a day.
func (r *Registry) resetDaily(userID string, m *models.UserMetrics) {
	today := r.now()
	if sameDay(m.LastReset, today) {
		return
	}
	m.LoggedWaterMl = 0
	m.LoggedCaloriesKcal = 0
	m.BurnedCaloriesKcal = 0
	m.WaterGoalBonusMl = 0
	m.FoodHistory = nil
	m.WorkoutHistory = nil
	m.LastReset = today
	slog.Info("Registry daily reset applied", "user", userID, "date", today.Format("2006-01-02"))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Snapshot returns a consistent copy of the user's record for presentation.
// Like every accessor it creates the record on first access and applies the
// daily reset first.
func (r *Registry) Snapshot(userID string) models.UserMetrics {
	var snap models.UserMetrics
	r.withUser(userID, func(m *models.UserMetrics) {
		snap = *m
		snap.FoodHistory = append([]models.FoodEntry(nil), m.FoodHistory...)
		snap.WorkoutHistory = append([]models.WorkoutEntry(nil), m.WorkoutHistory...)
		if m.Profile != nil {
			p := *m.Profile
			snap.Profile = &p
		}
	})
	return snap
}

// CommitProfile stores the wizard's collected profile and both goals.
// The workout water bonus accumulated earlier today is preserved.
func (r *Registry) CommitProfile(userID string, profile models.UserProfile, waterGoalMl, calorieGoalKcal int) models.UserMetrics {
	var snap models.UserMetrics
	r.withUser(userID, func(m *models.UserMetrics) {
		p := profile
		m.Profile = &p
		m.WaterGoalMl = waterGoalMl
		m.CalorieGoalKcal = calorieGoalKcal
		snap = *m
	})
	slog.Info("Registry profile committed", "user", userID, "water_goal", waterGoalMl, "calorie_goal", calorieGoalKcal)
	return snap
}

// LogWater records drunk water. Amount must be 1..5000 ml.
func (r *Registry) LogWater(userID string, amountMl int) (models.UserMetrics, error) {
	if amountMl < models.MinWaterMl || amountMl > models.MaxWaterMl {
		return models.UserMetrics{}, fmt.Errorf("water amount must be %d..%d ml, got %d: %w",
			models.MinWaterMl, models.MaxWaterMl, amountMl, models.ErrValidation)
	}
	var snap models.UserMetrics
	r.withUser(userID, func(m *models.UserMetrics) {
		m.LoggedWaterMl += amountMl
		snap = *m
	})
	slog.Debug("Registry water logged", "user", userID, "amount_ml", amountMl)
	return snap, nil
}

// LogFood records a food entry. Grams must be 1..5000; calories are
// kcalPer100g scaled by the portion.
func (r *Registry) LogFood(userID, name string, grams, kcalPer100g float64) (models.UserMetrics, float64, error) {
	if grams < models.MinGrams || grams > models.MaxGrams {
		return models.UserMetrics{}, 0, fmt.Errorf("grams must be %d..%d, got %g: %w",
			models.MinGrams, models.MaxGrams, grams, models.ErrValidation)
	}
	calories := kcalPer100g * grams / 100
	var snap models.UserMetrics
	r.withUser(userID, func(m *models.UserMetrics) {
		m.LoggedCaloriesKcal += calories
		m.FoodHistory = append(m.FoodHistory, models.FoodEntry{Name: name, Grams: grams, Calories: calories})
		snap = *m
	})
	slog.Debug("Registry food logged", "user", userID, "name", name, "grams", grams, "calories", calories)
	return snap, calories, nil
}

// LogWorkout records a workout of 1..480 minutes. Burn is computed from the
// profile weight (70 kg when the profile is unset) and the water goal widens
// by 200 ml per full 30 minutes until the next daily rollover.
func (r *Registry) LogWorkout(userID, workoutType string, minutes int) (models.UserMetrics, models.WorkoutEntry, int, error) {
	if minutes < models.MinWorkoutMin || minutes > models.MaxWorkoutMin {
		return models.UserMetrics{}, models.WorkoutEntry{}, 0, fmt.Errorf("workout minutes must be %d..%d, got %d: %w",
			models.MinWorkoutMin, models.MaxWorkoutMin, minutes, models.ErrValidation)
	}
	var snap models.UserMetrics
	var entry models.WorkoutEntry
	extraWater := (minutes / 30) * 200
	r.withUser(userID, func(m *models.UserMetrics) {
		weight := float64(calc.DefaultWeightKg)
		if m.Profile != nil {
			weight = m.Profile.WeightKg
		}
		burned := calc.WorkoutBurn(workoutType, minutes, weight)
		entry = models.WorkoutEntry{Type: workoutType, Minutes: minutes, Calories: burned}
		m.BurnedCaloriesKcal += burned
		m.WaterGoalBonusMl += extraWater
		m.WorkoutHistory = append(m.WorkoutHistory, entry)
		snap = *m
	})
	slog.Debug("Registry workout logged", "user", userID, "type", workoutType, "minutes", minutes, "burned", entry.Calories, "extra_water_ml", extraWater)
	return snap, entry, extraWater, nil
}
