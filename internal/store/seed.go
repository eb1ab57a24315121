package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed food_seed.json
var foodSeedJSON []byte

// seedEntry is one dataset row. The slice order in food_seed.json is the
// dataset's insertion order and drives substring-match tie-breaking.
type seedEntry struct {
	Name        string  `json:"name"`
	KcalPer100g float64 `json:"kcal_per_100g"`
}

// loadSeed parses the embedded dataset.
func loadSeed() ([]seedEntry, error) {
	var entries []seedEntry
	if err := json.Unmarshal(foodSeedJSON, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse embedded food dataset: %w", err)
	}
	return entries, nil
}
