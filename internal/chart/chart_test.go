package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/BTreeMap/FitTrack/internal/models"
)

func TestRenderProducesValidPNG(t *testing.T) {
	snap := models.UserMetrics{
		WaterGoalMl:        2600,
		CalorieGoalKcal:    2500,
		LoggedWaterMl:      1200,
		LoggedCaloriesKcal: 900,
		BurnedCaloriesKcal: 300,
	}
	data, err := Render(snap)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	// Two pies side by side.
	if img.Bounds().Dx() != 2*pieWidth {
		t.Errorf("expected width %d, got %d", 2*pieWidth, img.Bounds().Dx())
	}
}

func TestRenderEmptyDay(t *testing.T) {
	// A fresh record has zero accumulators; rendering must still work.
	snap := models.UserMetrics{WaterGoalMl: 2000, CalorieGoalKcal: 2000}
	if _, err := Render(snap); err != nil {
		t.Fatalf("Render failed on empty day: %v", err)
	}
}

func TestRenderOverAchievedDay(t *testing.T) {
	// Everything above goal: remaining slices collapse to zero.
	snap := models.UserMetrics{
		WaterGoalMl:        2000,
		CalorieGoalKcal:    2000,
		LoggedWaterMl:      3000,
		LoggedCaloriesKcal: 2500,
	}
	if _, err := Render(snap); err != nil {
		t.Fatalf("Render failed on over-achieved day: %v", err)
	}
}

func TestNonZeroFiltering(t *testing.T) {
	values := calorieValues(models.UserMetrics{CalorieGoalKcal: 2000, BurnedCaloriesKcal: 300})
	// Consumed is zero and must be dropped; burned and remaining stay.
	if len(values) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(values))
	}
}
