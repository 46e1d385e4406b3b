// Package wikipedia provides a client for the Wikipedia REST page summary
// endpoint, used as the last real image source before the deterministic
// fallback: the lead image of a city's article.
package wikipedia

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/tripfolio/cityscout/internal/ratelimit"
)

const (
	// ProviderName identifies this adapter in resolutions and logs.
	ProviderName = "wikipedia"

	defaultLocale      = "en"
	defaultMaxAttempts = 3
	// Wikimedia asks clients without special arrangements to stay under
	// 200 requests per minute
	defaultRatePerMinute = 100

	cacheTable = "wikipedia_cache"

	// User-Agent fields per the Wikimedia robot policy
	userAgentName    = "cityscout"
	userAgentContact = "https://github.com/tripfolio/cityscout"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Wikipedia REST API client.
type Client struct {
	baseURLTemplate string
	httpClient      HTTPDoer
	rateLimiter     *ratelimit.Limiter
	retryAttempts   int
	userAgent       string
}

// NewClient creates a new Wikipedia summary client. No credential is
// required; Wikimedia only asks for a descriptive User-Agent.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURLTemplate: "https://%s.wikipedia.org/api/rest_v1",
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		rateLimiter:     ratelimit.NewPerMinute("Wikipedia", defaultRatePerMinute),
		retryAttempts:   defaultMaxAttempts,
		userAgent:       buildUserAgent(),
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

// buildUserAgent constructs a user-agent string that complies with
// Wikimedia's robot policy:
// <client name> (<contact information>) <library>/<version>
func buildUserAgent() string {
	return fmt.Sprintf("%s (%s) Go-HTTP-Client/%s", userAgentName, userAgentContact, runtime.Version())
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

// WithBaseURL pins the client to a fixed base URL, ignoring the locale
// subdomain. Used in tests.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURLTemplate = strings.TrimSuffix(base, "/")
		}
	}
}

func (c *Client) baseURL(locale string) string {
	if locale == "" {
		locale = defaultLocale
	}
	if strings.Contains(c.baseURLTemplate, "%s") {
		return fmt.Sprintf(c.baseURLTemplate, locale)
	}
	return c.baseURLTemplate
}
