// Package chart renders a user's daily progress as a PNG image.
//
// It is a pure consumer of a metrics snapshot: two pie charts, water on the
// left, calories on the right, composed side by side into one image.
package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"

	"github.com/BTreeMap/FitTrack/internal/models"
	"github.com/wcharczuk/go-chart/v2"
)

// Pie dimensions in pixels.
const (
	pieWidth  = 512
	pieHeight = 512
)

// Render produces the progress chart PNG for a metrics snapshot.
func Render(snap models.UserMetrics) ([]byte, error) {
	waterPie, err := renderPie(waterValues(snap),
		fmt.Sprintf("Water %d/%d ml", snap.LoggedWaterMl, snap.EffectiveWaterGoalMl()))
	if err != nil {
		return nil, fmt.Errorf("failed to render water pie: %w", err)
	}

	balance := snap.CalorieBalanceKcal()
	if balance < 0 {
		balance = 0
	}
	caloriePie, err := renderPie(calorieValues(snap),
		fmt.Sprintf("Calories %.0f/%d kcal", balance, snap.CalorieGoalKcal))
	if err != nil {
		return nil, fmt.Errorf("failed to render calorie pie: %w", err)
	}

	out, err := composeSideBySide(waterPie, caloriePie)
	if err != nil {
		return nil, err
	}
	slog.Debug("chart rendered", "bytes", len(out))
	return out, nil
}

// waterValues builds the drunk/remaining slices, dropping zero slices.
func waterValues(snap models.UserMetrics) []chart.Value {
	remaining := snap.EffectiveWaterGoalMl() - snap.LoggedWaterMl
	if remaining < 0 {
		remaining = 0
	}
	return nonZero([]chart.Value{
		{Value: float64(snap.LoggedWaterMl), Label: fmt.Sprintf("Drunk %d ml", snap.LoggedWaterMl)},
		{Value: float64(remaining), Label: fmt.Sprintf("Remaining %d ml", remaining)},
	})
}

// calorieValues builds the consumed/burned/remaining slices, dropping zero slices.
func calorieValues(snap models.UserMetrics) []chart.Value {
	balance := snap.CalorieBalanceKcal()
	if balance < 0 {
		balance = 0
	}
	remaining := float64(snap.CalorieGoalKcal) - balance
	if remaining < 0 {
		remaining = 0
	}
	return nonZero([]chart.Value{
		{Value: snap.LoggedCaloriesKcal, Label: fmt.Sprintf("Consumed %.0f", snap.LoggedCaloriesKcal)},
		{Value: float64(snap.BurnedCaloriesKcal), Label: fmt.Sprintf("Burned %d", snap.BurnedCaloriesKcal)},
		{Value: remaining, Label: fmt.Sprintf("Remaining %.0f", remaining)},
	})
}

// nonZero drops zero slices; go-chart rejects them and the original chart
// filtered them too. An all-zero set collapses to a single placeholder slice.
func nonZero(values []chart.Value) []chart.Value {
	out := values[:0]
	for _, v := range values {
		if v.Value > 0 {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		out = []chart.Value{{Value: 1, Label: "No data"}}
	}
	return out
}

func renderPie(values []chart.Value, title string) ([]byte, error) {
	pie := chart.PieChart{
		Title:  title,
		Width:  pieWidth,
		Height: pieHeight,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// composeSideBySide joins two rendered PNGs into one image.
func composeSideBySide(left, right []byte) ([]byte, error) {
	leftImg, err := png.Decode(bytes.NewReader(left))
	if err != nil {
		return nil, fmt.Errorf("failed to decode left pie: %w", err)
	}
	rightImg, err := png.Decode(bytes.NewReader(right))
	if err != nil {
		return nil, fmt.Errorf("failed to decode right pie: %w", err)
	}

	lb, rb := leftImg.Bounds(), rightImg.Bounds()
	height := lb.Dy()
	if rb.Dy() > height {
		height = rb.Dy()
	}
	canvas := image.NewRGBA(image.Rect(0, 0, lb.Dx()+rb.Dx(), height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, lb.Dx(), lb.Dy()), leftImg, lb.Min, draw.Src)
	draw.Draw(canvas, image.Rect(lb.Dx(), 0, lb.Dx()+rb.Dx(), rb.Dy()), rightImg, rb.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode composed chart: %w", err)
	}
	return buf.Bytes(), nil
}
