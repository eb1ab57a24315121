// Package models defines the core data structures for FitTrack.
//
// It includes the per-user metrics record, the profile collected by the
// profile wizard, and the inbound response event shared across modules.
package models

import (
	"errors"
	"time"
)

// Validation bounds for user input shared by the metrics engine and wizards.
const (
	MinWeightKg   = 20
	MaxWeightKg   = 300
	MinHeightCm   = 100
	MaxHeightCm   = 250
	MinAgeYears   = 10
	MaxAgeYears   = 120
	MinActivity   = 0
	MaxActivity   = 480
	MinWaterMl    = 1
	MaxWaterMl    = 5000
	MinGrams      = 1
	MaxGrams      = 5000
	MinWorkoutMin = 1
	MaxWorkoutMin = 480
	MinCalGoal    = 1000
	MaxCalGoal    = 5000
)

// Default goals assigned on first access, before a profile is committed.
const (
	DefaultWaterGoalMl     = 2000
	DefaultCalorieGoalKcal = 2000
)

// Error variables for better error handling and testability
var (
	// ErrValidation marks out-of-range or unparsable user input. It is
	// always recovered by re-prompting; it never terminates a conversation.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyRecipient is returned for message sends without a recipient.
	ErrEmptyRecipient = errors.New("recipient cannot be empty")
)

// UserProfile holds the attributes collected by the profile wizard.
// It is immutable once committed except by re-running the wizard.
type UserProfile struct {
	WeightKg    float64 `json:"weight_kg"`
	HeightCm    float64 `json:"height_cm"`
	AgeYears    int     `json:"age_years"`
	Gender      string  `json:"gender"` // raw accepted token; classified by calc.IsMale
	ActivityMin int     `json:"activity_min"`
	City        string  `json:"city,omitempty"`
}

// FoodEntry is one logged food item.
type FoodEntry struct {
	Name     string  `json:"name"`
	Grams    float64 `json:"grams"`
	Calories float64 `json:"calories"`
}

// WorkoutEntry is one logged workout.
type WorkoutEntry struct {
	Type     string `json:"type"`
	Minutes  int    `json:"minutes"`
	Calories int    `json:"calories"`
}

// UserMetrics is the per-user daily record of goals, accumulators and history.
// All accumulators reset lazily at the first access of a new calendar day.
type UserMetrics struct {
	Profile *UserProfile `json:"profile,omitempty"`

	// WaterGoalMl is the committed base goal; WaterGoalBonusMl is the
	// workout hydration top-up, which lasts until the next daily rollover.
	WaterGoalMl      int `json:"water_goal_ml"`
	WaterGoalBonusMl int `json:"water_goal_bonus_ml"`
	CalorieGoalKcal  int `json:"calorie_goal_kcal"`

	LoggedWaterMl      int     `json:"logged_water_ml"`
	LoggedCaloriesKcal float64 `json:"logged_calories_kcal"`
	BurnedCaloriesKcal int     `json:"burned_calories_kcal"`

	LastReset      time.Time      `json:"last_reset"`
	FoodHistory    []FoodEntry    `json:"food_history"`
	WorkoutHistory []WorkoutEntry `json:"workout_history"`
}

// EffectiveWaterGoalMl returns the base water goal plus today's workout bonus.
func (m UserMetrics) EffectiveWaterGoalMl() int {
	return m.WaterGoalMl + m.WaterGoalBonusMl
}

// CalorieBalanceKcal returns consumed minus burned calories.
func (m UserMetrics) CalorieBalanceKcal() float64 {
	return m.LoggedCaloriesKcal - float64(m.BurnedCaloriesKcal)
}

// FoodInfo is a resolved product: display name and calories per 100 g.
type FoodInfo struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
}

// Response represents an incoming user message from the chat transport.
type Response struct {
	From string `json:"from"` // stable per-conversation user identity
	Body string `json:"body"`
	Time int64  `json:"time"`
}
