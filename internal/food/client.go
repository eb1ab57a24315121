package food

import (
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds every external lookup call so a slow service
// degrades to "not found" instead of stalling the conversation.
const DefaultHTTPTimeout = 10 * time.Second

// clientOpts holds shared HTTP configuration for lookup and translate clients.
type clientOpts struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures a lookup or translate client.
type ClientOption func(*clientOpts)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(o *clientOpts) { o.httpClient = &http.Client{Timeout: d} }
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOpts) { o.httpClient = c }
}

// WithBaseURL overrides the service base URL (self-hosted mirrors, tests).
func WithBaseURL(url string) ClientOption {
	return func(o *clientOpts) { o.baseURL = url }
}

// applyClientOpts resolves options against a default base URL.
func applyClientOpts(defaultBaseURL string, opts []ClientOption) clientOpts {
	cfg := clientOpts{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
