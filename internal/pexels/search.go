package pexels

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

// searchResponse mirrors the subset of the Pexels search payload we use.
type searchResponse struct {
	TotalResults int `json:"total_results"`
	Photos       []struct {
		ID     int `json:"id"`
		Width  int `json:"width"`
		Height int `json:"height"`
		Src    struct {
			Original string `json:"original"`
			Large2x  string `json:"large2x"`
		} `json:"src"`
		Photographer    string `json:"photographer"`
		PhotographerURL string `json:"photographer_url"`
	} `json:"photos"`
}

// SearchPhotos searches Pexels for photos matching the query. Results are
// cached by (normalized query, perPage, page); empty result sets are cached
// with the shorter negative TTL. A missing API key is reported as a
// ProviderUnavailableError without issuing a request.
func (c *Client) SearchPhotos(ctx context.Context, query string, perPage, page int) ([]city.Photo, error) {
	if c.apiKey == "" {
		return nil, cserrors.NewProviderUnavailableError(ProviderName, "missing API key")
	}
	if perPage <= 0 {
		perPage = 5
	}
	if page <= 0 {
		page = 1
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

	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	var response searchResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, cserrors.NewProviderUnavailableError(ProviderName, err.Error())
	}

	photos := make([]city.Photo, 0, len(response.Photos))
	for _, item := range response.Photos {
		raw := item.Src.Original
		if raw == "" {
			raw = item.Src.Large2x
		}
		if raw == "" {
			continue
		}

		photos = append(photos, city.Photo{
			ID:          strconv.Itoa(item.ID),
			Source:      ProviderName,
			Width:       item.Width,
			Height:      item.Height,
			RawURL:      raw,
			Variants:    buildVariants(raw),
			Attribution: item.Photographer,
			AttrURL:     item.PhotographerURL,
		})
	}
	return photos, nil
}

// buildVariants appends Pexels' image CDN sizing parameters to the
// original image URL.
func buildVariants(raw string) map[city.SizeClass]string {
	return map[city.SizeClass]string{
		city.SizeThumb: sizedURL(raw, thumbWidth),
		city.SizeHero:  sizedURL(raw, heroWidth),
	}
}

func sizedURL(raw string, width int) string {
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sauto=compress&cs=tinysrgb&w=%d", raw, sep, width)
}
