// Package pexels provides a client for the Pexels photo search API.
package pexels

import (
	"net/http"
	"strings"
	"time"

	"github.com/tripfolio/cityscout/internal/ratelimit"
)

const (
	// ProviderName identifies this adapter in resolutions and logs.
	ProviderName = "pexels"

	defaultBaseURL     = "https://api.pexels.com/v1"
	defaultMaxAttempts = 3
	// Pexels allows 200 requests per hour on the free tier.
	defaultRatePerMinute = 3

	thumbWidth = 1200
	heroWidth  = 1920
	cacheTable = "pexels_cache"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Pexels API client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
}

// NewClient creates a new Pexels API client. An empty API key is allowed;
// searches will then report the provider as unavailable.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.NewPerMinute("Pexels", defaultRatePerMinute),
		retryAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Name returns the provider identifier used in resolutions.
func (c *Client) Name() string {
	return ProviderName
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(client *Client) {
		if doer != nil {
			client.httpClient = doer
		}
	}
}

// WithBaseURL sets a custom base URL for the Pexels API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter, mainly to speed up tests.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}
