package food

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/BTreeMap/FitTrack/internal/models"
)

// defaultUSDABaseURL is the USDA FoodData Central API endpoint.
const defaultUSDABaseURL = "https://api.nal.usda.gov/fdc"

// usdaPageSize is the number of candidates fetched per search.
const usdaPageSize = 5

// USDAClient looks products up in USDA FoodData Central.
// Without an API key the stage is skipped entirely.
type USDAClient struct {
	apiKey     string
	translator Translator
	httpClient *http.Client
	baseURL    string
}

// NewUSDAClient creates a USDA lookup. The translator is applied to queries
// containing non-ASCII runes; pass PassthroughTranslator to disable.
func NewUSDAClient(apiKey string, translator Translator, opts ...ClientOption) *USDAClient {
	cfg := applyClientOpts(defaultUSDABaseURL, opts)
	if translator == nil {
		translator = PassthroughTranslator{}
	}
	return &USDAClient{
		apiKey:     apiKey,
		translator: translator,
		httpClient: cfg.httpClient,
		baseURL:    cfg.baseURL,
	}
}

type usdaNutrient struct {
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

type usdaFood struct {
	Description   string         `json:"description"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type usdaSearchResponse struct {
	Foods []usdaFood `json:"foods"`
}

// Search queries FoodData Central for the product, preferring raw foods, and
// extracts the energy-in-kcal nutrient. Returns (nil, nil) when the key is
// missing, no candidate matches, or the energy nutrient is absent.
func (c *USDAClient) Search(ctx context.Context, product string) (*models.FoodInfo, error) {
	if c.apiKey == "" {
		slog.Debug("USDAClient skipped, no API key configured")
		return nil, nil
	}

	query := product
	if !isASCII(product) {
		translated, err := c.translator.Translate(ctx, product)
		if err != nil {
			slog.Debug("USDAClient translation failed, using original query", "error", err, "product", product)
		} else if translated != "" {
			query = translated
		}
	}
	slog.Info("USDA search", "query", product, "translated", query)

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("dataType", "SR Legacy")
	params.Set("pageSize", fmt.Sprintf("%d", usdaPageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/foods/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build USDA request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("USDA request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("USDA returned status %d", resp.StatusCode)
	}

	var body usdaSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode USDA response: %w", err)
	}
	if len(body.Foods) == 0 {
		slog.Debug("USDAClient no candidates", "query", query)
		return nil, nil
	}

	// Prefer a raw-food candidate over processed entries.
	best := body.Foods[0]
	for _, f := range body.Foods {
		if strings.Contains(strings.ToLower(f.Description), "raw") {
			best = f
			break
		}
	}

	for _, n := range best.FoodNutrients {
		if strings.Contains(strings.ToLower(n.NutrientName), "energy") &&
			strings.Contains(strings.ToLower(n.UnitName), "kcal") {
			slog.Debug("USDAClient resolved", "description", best.Description, "kcal", n.Value)
			return &models.FoodInfo{Name: best.Description, CaloriesPer100g: n.Value}, nil
		}
	}
	slog.Debug("USDAClient candidate has no kcal nutrient", "description", best.Description)
	return nil, nil
}
