// Package foursquare provides a client for the Foursquare Places API,
// used as a third photo source: a place search followed by a place photo
// lookup for the best match.
package foursquare

import (
	"net/http"
	"strings"
	"time"

	"github.com/tripfolio/cityscout/internal/ratelimit"
)

const (
	// ProviderName identifies this adapter in resolutions and logs.
	ProviderName = "foursquare"

	defaultBaseURL       = "https://api.foursquare.com/v3"
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 2

	thumbSize  = "1200x800"
	heroSize   = "1920x1080"
	cacheTable = "foursquare_cache"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Foursquare Places API client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
}

// NewClient creates a new Foursquare API client. An empty API key is
// allowed; searches will then report the provider as unavailable.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.New("Foursquare", defaultRatePerSecond),
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

// WithBaseURL sets a custom base URL for the Foursquare API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}
