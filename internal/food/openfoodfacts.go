package food

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/BTreeMap/FitTrack/internal/models"
)

// defaultOpenFoodFactsBaseURL is the public Open Food Facts search endpoint.
const defaultOpenFoodFactsBaseURL = "https://world.openfoodfacts.org"

// OpenFoodFactsClient is the last-resort lookup. It needs no credentials.
type OpenFoodFactsClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenFoodFactsClient creates an Open Food Facts lookup.
func NewOpenFoodFactsClient(opts ...ClientOption) *OpenFoodFactsClient {
	cfg := applyClientOpts(defaultOpenFoodFactsBaseURL, opts)
	return &OpenFoodFactsClient{httpClient: cfg.httpClient, baseURL: cfg.baseURL}
}

type offProduct struct {
	ProductName string `json:"product_name"`
	Nutriments  struct {
		EnergyKcal100g float64 `json:"energy-kcal_100g"`
	} `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// Search queries Open Food Facts by the raw product name and takes the first
// result. Returns (nil, nil) when there are no results or the energy field
// is zero or absent.
func (c *OpenFoodFactsClient) Search(ctx context.Context, product string) (*models.FoodInfo, error) {
	params := url.Values{}
	params.Set("action", "process")
	params.Set("search_terms", product)
	params.Set("json", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cgi/search.pl?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Open Food Facts request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Open Food Facts request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Open Food Facts returned status %d", resp.StatusCode)
	}

	var body offSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode Open Food Facts response: %w", err)
	}
	if len(body.Products) == 0 {
		slog.Debug("OpenFoodFactsClient no products", "product", product)
		return nil, nil
	}

	first := body.Products[0]
	if first.Nutriments.EnergyKcal100g == 0 {
		slog.Debug("OpenFoodFactsClient product has no energy value", "product", product)
		return nil, nil
	}
	name := first.ProductName
	if name == "" {
		name = product
	}
	slog.Debug("OpenFoodFactsClient resolved", "name", name, "kcal", first.Nutriments.EnergyKcal100g)
	return &models.FoodInfo{Name: name, CaloriesPer100g: first.Nutriments.EnergyKcal100g}, nil
}
