// Package models defines wizard state enumerations for FitTrack flows.
package models

// FlowType identifies which wizard owns a conversation session.
type FlowType string

const (
	// FlowTypeProfile is the multi-step profile collection wizard.
	FlowTypeProfile FlowType = "profile"
	// FlowTypeFoodLog is the food logging wizard.
	FlowTypeFoodLog FlowType = "food_log"
)

// StateType is the tag of a wizard state.
type StateType string

// Profile wizard states, in strict linear order. Each state re-prompts on
// validation failure without discarding previously collected answers.
const (
	StateProfileWeight      StateType = "PROFILE_WEIGHT"
	StateProfileHeight      StateType = "PROFILE_HEIGHT"
	StateProfileAge         StateType = "PROFILE_AGE"
	StateProfileGender      StateType = "PROFILE_GENDER"
	StateProfileActivity    StateType = "PROFILE_ACTIVITY"
	StateProfileCity        StateType = "PROFILE_CITY"
	StateProfileCalorieGoal StateType = "PROFILE_CALORIE_GOAL"
)

// Food wizard states. The single GRAMS state carries a manual-calories
// sub-mode driven by PendingFoodEntry.AwaitingManualCalories.
const (
	StateFoodGrams StateType = "FOOD_GRAMS"
)

// PendingFoodEntry is the transient record between the food wizard's entry
// step and its terminal step. Discarded on completion or cancellation.
type PendingFoodEntry struct {
	Name                   string
	CaloriesPer100g        float64
	HasCalories            bool
	AwaitingManualCalories bool
}
