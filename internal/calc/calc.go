// Package calc provides the pure goal and burn calculations for FitTrack.
//
// Water goals follow the weight*30 baseline with activity and heat bonuses;
// calorie goals use the Mifflin-St Jeor basal metabolic rate scaled by an
// activity multiplier; workout burn uses a fixed per-minute rate table scaled
// by body weight.
package calc

import (
	"sort"
	"strings"
)

// Heat thresholds and bonuses for the water goal, in Celsius and milliliters.
const (
	hotTempC      = 30
	warmTempC     = 25
	hotBonusMl    = 1000
	warmBonusMl   = 500
	activityStep  = 30  // minutes of activity per water bonus step
	activityBonus = 500 // milliliters per activity step
)

// DefaultWeightKg is assumed when a workout is logged before the profile is set.
const DefaultWeightKg = 70

// defaultBurnRate is the per-minute burn for unrecognized workout types.
const defaultBurnRate = 5

// burnRates maps workout types (Russian and English, lowercase) to calories
// burned per minute at the reference weight of 70 kg.
var burnRates = map[string]int{
	"бег": 10, "running": 10,
	"ходьба": 4, "walking": 4,
	"плавание": 8, "swimming": 8,
	"велосипед": 7, "cycling": 7,
	"йога": 3, "yoga": 3,
	"силовая": 6, "strength": 6,
	"кардио": 8, "cardio": 8,
	"танцы": 6, "dancing": 6,
	"футбол": 9, "football": 9,
	"баскетбол": 8, "basketball": 8,
	"теннис": 7, "tennis": 7,
}

// maleTokens is the fixed set of case-insensitive tokens classified as male.
// Anything else is treated as female.
var maleTokens = map[string]struct{}{
	"м": {}, "m": {}, "male": {}, "мужской": {},
}

// WaterGoal computes the daily water goal in milliliters.
// temp is the current temperature in Celsius, nil when unknown (no bonus).
func WaterGoal(weightKg float64, activityMin int, temp *float64) int {
	base := weightKg * 30
	bonus := (activityMin / activityStep) * activityBonus
	weatherBonus := 0
	if temp != nil {
		switch {
		case *temp > hotTempC:
			weatherBonus = hotBonusMl
		case *temp > warmTempC:
			weatherBonus = warmBonusMl
		}
	}
	return int(base) + bonus + weatherBonus
}

// IsMale classifies a gender token. The token set is fixed and case-insensitive.
func IsMale(gender string) bool {
	_, ok := maleTokens[strings.ToLower(strings.TrimSpace(gender))]
	return ok
}

// CalorieGoal computes the daily calorie goal in kcal using the
// Mifflin-St Jeor formula and an activity multiplier. The result is truncated.
func CalorieGoal(weightKg, heightCm float64, ageYears int, gender string, activityMin int) int {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if IsMale(gender) {
		bmr += 5
	} else {
		bmr -= 161
	}

	var mult float64
	switch {
	case activityMin < 15:
		mult = 1.2
	case activityMin < 30:
		mult = 1.375
	case activityMin < 60:
		mult = 1.55
	case activityMin < 90:
		mult = 1.725
	default:
		mult = 1.9
	}

	return int(bmr * mult)
}

// WorkoutBurn computes calories burned for a workout, scaled by body weight
// relative to the 70 kg reference. Unrecognized types burn 5 kcal/min.
func WorkoutBurn(workoutType string, minutes int, weightKg float64) int {
	rate, ok := burnRates[strings.ToLower(strings.TrimSpace(workoutType))]
	if !ok {
		rate = defaultBurnRate
	}
	return int(float64(rate) * float64(minutes) * (weightKg / DefaultWeightKg))
}

// WorkoutTypes returns the known workout type names in sorted order,
// for usage and help messages.
func WorkoutTypes() []string {
	types := make([]string, 0, len(burnRates))
	for t := range burnRates {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
