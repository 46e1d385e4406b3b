// Package unsplash provides a client for the Unsplash photo search API.
package unsplash

import (
	"net/http"
	"strings"
	"time"

	"github.com/tripfolio/cityscout/internal/ratelimit"
)

const (
	// ProviderName identifies this adapter in resolutions and logs.
	ProviderName = "unsplash"

	defaultBaseURL     = "https://api.unsplash.com"
	defaultMaxAttempts = 3
	// Demo applications get 50 requests per hour; one per second with a
	// small burst stays well inside production quotas too.
	defaultRatePerSecond = 1
	defaultBurst         = 5

	thumbWidth  = 1200
	thumbQual   = 80
	heroWidth   = 1920
	heroQual    = 85
	cacheTable  = "unsplash_cache"
	maxQueryLen = 256
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an Unsplash API client.
type Client struct {
	accessKey     string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
}

// NewClient creates a new Unsplash API client. An empty access key is
// allowed; searches will then report the provider as unavailable.
func NewClient(accessKey string, opts ...Option) *Client {
	client := &Client{
		accessKey:     accessKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.NewWithBurst("Unsplash", defaultRatePerSecond, defaultBurst),
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

// WithBaseURL sets a custom base URL for the Unsplash API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}
