package unsplash

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tripfolio/cityscout/internal/cache"
	"github.com/tripfolio/cityscout/internal/city"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

// searchResponse mirrors the subset of the Unsplash search payload we use.
type searchResponse struct {
	Total   int `json:"total"`
	Results []struct {
		ID     string `json:"id"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
		URLs   struct {
			Raw     string `json:"raw"`
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// SearchPhotos searches Unsplash for photos matching the query. Results are
// cached by (normalized query, perPage, page); empty result sets are cached
// with the shorter negative TTL. A missing access key is reported as a
// ProviderUnavailableError without issuing a request.
func (c *Client) SearchPhotos(ctx context.Context, query string, perPage, page int) ([]city.Photo, error) {
	if c.accessKey == "" {
		return nil, cserrors.NewProviderUnavailableError(ProviderName, "missing API key")
	}
	if perPage <= 0 {
		perPage = 5
	}
	if page <= 0 {
		page = 1
	}
	if len(query) > maxQueryLen {
		query = query[:maxQueryLen]
	}

	photos, _, err := cache.GetOrFetchWithTTL(cacheTable, cache.Key(query, perPage, page),
		func() ([]city.Photo, error) {
			return c.fetchPhotos(ctx, query, perPage, page)
		},
		cache.SelectNegativeCacheTTL(func(p []city.Photo) bool {
			return len(p) == 0
		}))
	return photos, err
}

func (c *Client) fetchPhotos(ctx context.Context, query string, perPage, page int) ([]city.Photo, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("orientation", "landscape")

	endpoint := fmt.Sprintf("%s/search/photos?%s", c.baseURL, params.Encode())

	var response searchResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, cserrors.NewProviderUnavailableError(ProviderName, err.Error())
	}

	photos := make([]city.Photo, 0, len(response.Results))
	for _, item := range response.Results {
		raw := item.URLs.Raw
		if raw == "" {
			raw = item.URLs.Regular
		}
		if raw == "" {
			continue
		}

		photos = append(photos, city.Photo{
			ID:          item.ID,
			Source:      ProviderName,
			Width:       item.Width,
			Height:      item.Height,
			RawURL:      raw,
			Variants:    buildVariants(raw),
			Attribution: item.User.Name,
			AttrURL:     item.User.Links.HTML,
		})
	}
	return photos, nil
}

// buildVariants appends Unsplash's dynamic resizing parameters to the raw
// image URL. Raw URLs already carry query parameters (ixid), so the size
// parameters are joined with the right separator.
func buildVariants(raw string) map[city.SizeClass]string {
	return map[city.SizeClass]string{
		city.SizeThumb: sizedURL(raw, thumbWidth, thumbQual),
		city.SizeHero:  sizedURL(raw, heroWidth, heroQual),
	}
}

func sizedURL(raw string, width, quality int) string {
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sw=%d&q=%d&fit=max&auto=format", raw, sep, width, quality)
}
