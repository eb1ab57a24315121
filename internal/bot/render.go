package bot

import (
	"fmt"
	"strings"

	"github.com/BTreeMap/FitTrack/internal/calc"
	"github.com/BTreeMap/FitTrack/internal/models"
)

func startText() string {
	return "Hi! I track your daily water and calories.\n\n" +
		"Start with /set_profile, then log what you drink, eat, and burn.\n" +
		"See /help for the full command list."
}

func helpText() string {
	return "Commands:\n" +
		"/set_profile - set up your profile (weight, height, age, activity, city)\n" +
		"/log_water <ml> - log drunk water\n" +
		"/log_food <product> - log eaten food\n" +
		"/log_workout <type> <minutes> - log a workout\n" +
		"/check_progress - water and calorie progress for today\n" +
		"/chart - progress chart as an image\n" +
		"/recommend - food and workout tips based on today\n" +
		"/cancel - abort the current dialog\n\n" +
		"Workout types: " + strings.Join(calc.WorkoutTypes(), ", ")
}

func workoutUsageText() string {
	return "Usage: /log_workout <type> <minutes>\nExample: /log_workout бег 30\n\n" +
		"Known types: " + strings.Join(calc.WorkoutTypes(), ", ")
}

func waterLogText(snap models.UserMetrics, amount int) string {
	goal := snap.EffectiveWaterGoalMl()
	remaining := goal - snap.LoggedWaterMl
	status := fmt.Sprintf("Remaining: %d ml.", remaining)
	if remaining <= 0 {
		status = "Goal reached!"
	}
	return fmt.Sprintf("Logged: %d ml of water.\n\nDrunk: %d of %d ml.\n%s", amount, snap.LoggedWaterMl, goal, status)
}

func workoutLogText(snap models.UserMetrics, entry models.WorkoutEntry, extraWaterMl int) string {
	msg := fmt.Sprintf("%s for %d minutes: %d kcal burned.", capitalizeFirst(entry.Type), entry.Minutes, entry.Calories)
	if extraWaterMl > 0 {
		msg += fmt.Sprintf("\nExtra: drink %d ml of water.", extraWaterMl)
	}
	msg += fmt.Sprintf("\n\nBurned today: %d kcal.", snap.BurnedCaloriesKcal)
	return msg
}

// progressText renders today's water and calorie progress. tempInfo is an
// optional preamble line ending in a blank line.
func progressText(snap models.UserMetrics, tempInfo string) string {
	waterGoal := snap.EffectiveWaterGoalMl()
	waterPct := percent(float64(snap.LoggedWaterMl), float64(waterGoal))
	waterRemaining := waterGoal - snap.LoggedWaterMl
	if waterRemaining < 0 {
		waterRemaining = 0
	}

	balance := snap.CalorieBalanceKcal()
	calPct := percent(balance, float64(snap.CalorieGoalKcal))
	calRemaining := float64(snap.CalorieGoalKcal) - balance
	if calRemaining < 0 {
		calRemaining = 0
	}

	return tempInfo + fmt.Sprintf(
		"Progress:\n\n"+
			"Water:\n"+
			"[%s] %.0f%%\n"+
			"- Drunk: %d of %d ml.\n"+
			"- Remaining: %d ml.\n\n"+
			"Calories:\n"+
			"[%s] %.0f%%\n"+
			"- Consumed: %.0f kcal of %d kcal.\n"+
			"- Burned: %d kcal.\n"+
			"- Balance: %.0f kcal.\n"+
			"- Remaining: %.0f kcal.",
		progressBar(waterPct), waterPct,
		snap.LoggedWaterMl, waterGoal,
		waterRemaining,
		progressBar(calPct), calPct,
		snap.LoggedCaloriesKcal, snap.CalorieGoalKcal,
		snap.BurnedCaloriesKcal,
		balance,
		calRemaining,
	)
}

func recommendationsText(snap models.UserMetrics) string {
	var b strings.Builder
	b.WriteString("Recommendations:\n\n")

	waterGoal := snap.EffectiveWaterGoalMl()
	waterPct := percent(float64(snap.LoggedWaterMl), float64(waterGoal))
	b.WriteString("Water: ")
	switch {
	case waterPct < 30:
		b.WriteString("you are drinking too little. Have a glass of water right now.\n")
	case waterPct < 60:
		b.WriteString("not bad, but keep drinking regularly through the day.\n")
	default:
		b.WriteString("great pace, keep it up.\n")
	}

	goal := float64(snap.CalorieGoalKcal)
	balance := snap.CalorieBalanceKcal()
	remaining := goal - balance
	b.WriteString("Food: ")
	switch {
	case balance > goal*1.2:
		b.WriteString("you are well over your goal. Prefer water and vegetables for the rest of the day.\n")
	case remaining > goal*0.4:
		b.WriteString("plenty of room left. Good options: cottage cheese, eggs, chicken breast.\n")
	case remaining > 0:
		b.WriteString("almost there. Keep the remaining meals light: vegetables, kefir.\n")
	default:
		b.WriteString("daily goal reached. Stop at water and light snacks.\n")
	}

	b.WriteString("Activity: ")
	switch {
	case snap.BurnedCaloriesKcal == 0:
		b.WriteString("no workouts today. A 30-minute walk, yoga, or stretching would help.")
	case snap.BurnedCaloriesKcal < 200:
		b.WriteString("good start. A bit more movement would round out the day.")
	default:
		b.WriteString("great activity today.")
	}
	return b.String()
}

// progressBar renders a 10-segment bar for a percentage in [0, 100].
func progressBar(pct float64) string {
	filled := int(pct / 10)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("=", filled) + strings.Repeat("-", 10-filled)
}

// percent returns value/total as a percentage capped at 100 and floored at 0.
func percent(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := value / total * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
