package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BTreeMap/FitTrack/internal/calc"
	"github.com/BTreeMap/FitTrack/internal/metrics"
	"github.com/BTreeMap/FitTrack/internal/models"
	"github.com/BTreeMap/FitTrack/internal/weather"
)

// UseComputedSentinel is the reply that accepts the computed calorie goal.
const UseComputedSentinel = "use computed"

// genderTokens is the fixed reply set accepted at the gender step.
var genderTokens = map[string]struct{}{
	"м": {}, "ж": {}, "m": {}, "f": {},
}

// ProfileWizard drives the profile-collection dialogue:
// weight, height, age, gender, activity, city, calorie goal. On the terminal
// transition it computes the water goal from the collected answers plus the
// city's current temperature and commits everything into the registry.
type ProfileWizard struct {
	userID   string
	state    models.StateType
	registry *metrics.Registry
	weather  weather.Provider

	// answers collected so far; validation failures never discard them.
	weightKg    float64
	heightCm    float64
	ageYears    int
	gender      string
	activityMin int
	city        string
	tempC       *float64
	computedCal int
}

// NewProfileWizard creates a profile wizard for one user.
func NewProfileWizard(userID string, registry *metrics.Registry, weatherProvider weather.Provider) *ProfileWizard {
	return &ProfileWizard{userID: userID, registry: registry, weather: weatherProvider}
}

// Type implements Wizard.
func (w *ProfileWizard) Type() models.FlowType { return models.FlowTypeProfile }

// Start implements Wizard.
func (w *ProfileWizard) Start(ctx context.Context) string {
	w.state = models.StateProfileWeight
	slog.Debug("ProfileWizard started", "user", w.userID)
	return "Profile setup.\n\nEnter your weight (kg):"
}

// HandleInput implements Wizard.
func (w *ProfileWizard) HandleInput(ctx context.Context, input string) (string, bool) {
	text := strings.TrimSpace(input)
	slog.Debug("ProfileWizard input", "user", w.userID, "state", w.state)

	switch w.state {
	case models.StateProfileWeight:
		weight, err := parseDecimal(text)
		if err != nil || weight < models.MinWeightKg || weight > models.MaxWeightKg {
			return "Invalid weight. Enter a number from 20 to 300:", false
		}
		w.weightKg = weight
		w.state = models.StateProfileHeight
		return "Enter your height (cm):", false

	case models.StateProfileHeight:
		height, err := parseDecimal(text)
		if err != nil || height < models.MinHeightCm || height > models.MaxHeightCm {
			return "Invalid height. Enter a number from 100 to 250:", false
		}
		w.heightCm = height
		w.state = models.StateProfileAge
		return "Enter your age:", false

	case models.StateProfileAge:
		age, err := strconv.Atoi(text)
		if err != nil || age < models.MinAgeYears || age > models.MaxAgeYears {
			return "Invalid age. Enter a number from 10 to 120:", false
		}
		w.ageYears = age
		w.state = models.StateProfileGender
		return "Your gender (м/ж or m/f):", false

	case models.StateProfileGender:
		gender := strings.ToLower(text)
		if _, ok := genderTokens[gender]; !ok {
			return "Reply м, ж, m or f:", false
		}
		w.gender = gender
		w.state = models.StateProfileActivity
		return "Minutes of activity per day:", false

	case models.StateProfileActivity:
		activity, err := strconv.Atoi(text)
		if err != nil || activity < models.MinActivity || activity > models.MaxActivity {
			return "Invalid value. Enter a number from 0 to 480:", false
		}
		w.activityMin = activity
		w.state = models.StateProfileCity
		return "Your city (used for weather-adjusted water goals):", false

	case models.StateProfileCity:
		w.city = text
		w.tempC = w.lookupTemp(ctx, text)
		tempMsg := fmt.Sprintf("Could not fetch the weather for %s.", w.city)
		if w.tempC != nil {
			tempMsg = fmt.Sprintf("Temperature in %s: %.1f°C.", w.city, *w.tempC)
		}
		w.computedCal = calc.CalorieGoal(w.weightKg, w.heightCm, w.ageYears, w.gender, w.activityMin)
		w.state = models.StateProfileCalorieGoal
		return fmt.Sprintf("%s\n\nComputed calorie goal: %d kcal/day.\nEnter your own goal (1000-5000) or reply %q:",
			tempMsg, w.computedCal, UseComputedSentinel), false

	case models.StateProfileCalorieGoal:
		calGoal := w.computedCal
		if !strings.EqualFold(text, UseComputedSentinel) {
			manual, err := strconv.Atoi(text)
			if err != nil || manual < models.MinCalGoal || manual > models.MaxCalGoal {
				return fmt.Sprintf("Enter a value from 1000 to 5000, or reply %q:", UseComputedSentinel), false
			}
			calGoal = manual
		}
		return w.commit(calGoal), true

	default:
		slog.Error("ProfileWizard unsupported state", "user", w.userID, "state", w.state)
		return "Something went wrong, profile setup cancelled. Use /set_profile to start over.", true
	}
}

// lookupTemp fetches the current temperature best-effort; unknown on failure.
func (w *ProfileWizard) lookupTemp(ctx context.Context, city string) *float64 {
	if w.weather == nil {
		return nil
	}
	temp, err := w.weather.CurrentTemp(ctx, city)
	if err != nil {
		slog.Warn("ProfileWizard weather lookup failed", "error", err, "user", w.userID, "city", city)
		return nil
	}
	return temp
}

// commit computes the water goal and stores the profile and both goals.
func (w *ProfileWizard) commit(calorieGoal int) string {
	waterGoal := calc.WaterGoal(w.weightKg, w.activityMin, w.tempC)
	profile := models.UserProfile{
		WeightKg:    w.weightKg,
		HeightCm:    w.heightCm,
		AgeYears:    w.ageYears,
		Gender:      w.gender,
		ActivityMin: w.activityMin,
		City:        w.city,
	}
	w.registry.CommitProfile(w.userID, profile, waterGoal, calorieGoal)

	genderText := "Female"
	if calc.IsMale(w.gender) {
		genderText = "Male"
	}
	return fmt.Sprintf(
		"Profile saved.\n\n"+
			"Weight: %g kg\n"+
			"Height: %g cm\n"+
			"Age: %d\n"+
			"Gender: %s\n"+
			"Activity: %d min/day\n"+
			"City: %s\n\n"+
			"Goals:\n"+
			"Water: %d ml\n"+
			"Calories: %d kcal",
		w.weightKg, w.heightCm, w.ageYears, genderText, w.activityMin, w.city, waterGoal, calorieGoal)
}

// Cancel implements Wizard.
func (w *ProfileWizard) Cancel() string {
	slog.Debug("ProfileWizard cancelled", "user", w.userID, "state", w.state)
	return "Profile setup cancelled."
}
