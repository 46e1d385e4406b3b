package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tripfolio/cityscout/internal/cache"
	"github.com/tripfolio/cityscout/internal/city"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

// summaryResponse mirrors the subset of the REST page summary payload we use.
type summaryResponse struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Lang      string `json:"lang"`
	Thumbnail *struct {
		Source string `json:"source"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"thumbnail"`
	OriginalImage *struct {
		Source string `json:"source"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"originalimage"`
}

// cachedSummary wraps the result so "article not found" is cacheable.
type cachedSummary struct {
	Summary  *city.Summary `json:"summary"`
	NotFound bool          `json:"not_found"`
}

// GetSummary fetches the page summary for the given title in the given
// locale ("en" when empty). Returns nil with no error when no article
// exists — absence is an answer, not a failure. Results, including
// negative ones, are cached.
func (c *Client) GetSummary(ctx context.Context, title, locale string) (*city.Summary, error) {
	if locale == "" {
		locale = defaultLocale
	}

	cacheKey := strings.ToLower(locale) + "|" + strings.ToLower(strings.TrimSpace(title))
	result, _, err := cache.GetOrFetchWithTTL(cacheTable, cacheKey,
		func() (*cachedSummary, error) {
			return c.fetchSummary(ctx, title, locale)
		},
		cache.SelectNegativeCacheTTL(func(r *cachedSummary) bool {
			return r == nil || r.NotFound
		}))
	if err != nil {
		return nil, err
	}
	if result == nil || result.NotFound {
		return nil, nil
	}
	return result.Summary, nil
}

func (c *Client) fetchSummary(ctx context.Context, title, locale string) (*cachedSummary, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/page/summary/%s", c.baseURL(locale), url.PathEscape(strings.ReplaceAll(title, " ", "_")))

	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		result, err := c.doSummaryRequest(ctx, endpoint)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == c.retryAttempts {
			break
		}
		time.Sleep(backoffDelay(attempt))
	}
	return nil, cserrors.NewProviderUnavailableError(ProviderName, lastErr.Error())
}

func (c *Client) doSummaryRequest(ctx context.Context, endpoint string) (*cachedSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return &cachedSummary{NotFound: true}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("wikipedia: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	summary := &city.Summary{
		Title:   response.Title,
		Extract: response.Extract,
		Lang:    response.Lang,
	}
	if response.OriginalImage != nil {
		summary.LeadImageURL = response.OriginalImage.Source
	}
	if response.Thumbnail != nil {
		summary.ThumbnailURL = response.Thumbnail.Source
		if summary.LeadImageURL == "" {
			summary.LeadImageURL = response.Thumbnail.Source
		}
	}
	return &cachedSummary{Summary: summary}, nil
}

func isRetryable(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > 10*time.Second {
		return 10 * time.Second
	}
	return delay
}
