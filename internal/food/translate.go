package food

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// Translator converts a query to English for lookup services that only
// index English names. Best-effort: callers use the original text on failure.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// PassthroughTranslator returns the input unchanged. It is the default when
// no translation service is configured.
type PassthroughTranslator struct{}

// Translate returns text as-is.
func (PassthroughTranslator) Translate(ctx context.Context, text string) (string, error) {
	return text, nil
}

// defaultMyMemoryBaseURL is the public MyMemory translation endpoint.
const defaultMyMemoryBaseURL = "https://api.mymemory.translated.net"

// MyMemoryTranslator translates via the free MyMemory API.
type MyMemoryTranslator struct {
	httpClient *http.Client
	baseURL    string
}

// NewMyMemoryTranslator creates a MyMemory-backed Translator.
func NewMyMemoryTranslator(opts ...ClientOption) *MyMemoryTranslator {
	cfg := applyClientOpts(defaultMyMemoryBaseURL, opts)
	return &MyMemoryTranslator{httpClient: cfg.httpClient, baseURL: cfg.baseURL}
}

// Translate translates text to English, auto-detecting the source language.
func (t *MyMemoryTranslator) Translate(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", "Autodetect|en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build translate request: %w", err)
	}
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate service returned status %d", resp.StatusCode)
	}

	var body struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode translate response: %w", err)
	}
	if body.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("translate service returned empty result")
	}
	slog.Debug("MyMemoryTranslator translated", "text", text, "result", body.ResponseData.TranslatedText)
	return body.ResponseData.TranslatedText, nil
}
