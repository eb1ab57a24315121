// Package weather provides the current-temperature port used to bias water goals.
//
// Temperature is best-effort: a missing credential or a failed lookup yields
// "unknown" (nil) and the caller proceeds without a weather bonus.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultHTTPTimeout bounds weather lookups.
const DefaultHTTPTimeout = 10 * time.Second

// defaultBaseURL is the OpenWeatherMap API endpoint.
const defaultBaseURL = "https://api.openweathermap.org"

// Provider returns the current temperature for a city in Celsius,
// or (nil, nil) when unknown.
type Provider interface {
	CurrentTemp(ctx context.Context, city string) (*float64, error)
}

// Opts holds configuration for the OpenWeatherMap client.
type Opts struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Option configures the OpenWeatherMap client.
type Option func(*Opts)

// WithAPIKey sets the OpenWeatherMap API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opts) { o.HTTPClient = c }
}

// OpenWeatherMap implements Provider against api.openweathermap.org.
// Without an API key every lookup returns unknown.
type OpenWeatherMap struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMap creates an OpenWeatherMap provider.
func NewOpenWeatherMap(opts ...Option) *OpenWeatherMap {
	cfg := Opts{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OpenWeatherMap{apiKey: cfg.APIKey, baseURL: cfg.BaseURL, httpClient: cfg.HTTPClient}
}

// CurrentTemp fetches the current temperature in Celsius for a city.
func (w *OpenWeatherMap) CurrentTemp(ctx context.Context, city string) (*float64, error) {
	if w.apiKey == "" {
		slog.Debug("OpenWeatherMap skipped, no API key configured")
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", w.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/data/2.5/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		slog.Debug("OpenWeatherMap non-OK response", "status", resp.StatusCode, "city", city)
		return nil, nil
	}

	var body struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	slog.Debug("OpenWeatherMap current temperature", "city", city, "temp", body.Main.Temp)
	return &body.Main.Temp, nil
}
