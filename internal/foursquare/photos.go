package foursquare

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tripfolio/cityscout/internal/cache"
	"github.com/tripfolio/cityscout/internal/city"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

type placeSearchResponse struct {
	Results []struct {
		FsqID string `json:"fsq_id"`
		Name  string `json:"name"`
	} `json:"results"`
}

// placePhoto is a Foursquare photo record. The final image URL is composed
// from prefix + "{width}x{height}" + suffix.
type placePhoto struct {
	ID     string `json:"id"`
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SearchPhotos resolves the query to the best-matching place and returns
// that place's photos. Both steps run behind one cache entry keyed by the
// query, so a cached miss costs nothing on repeat. A missing API key is
// reported as a ProviderUnavailableError without issuing a request.
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
			return c.fetchPlacePhotos(ctx, query, perPage)
		},
		cache.SelectNegativeCacheTTL(func(p []city.Photo) bool {
			return len(p) == 0
		}))
	return photos, err
}

func (c *Client) fetchPlacePhotos(ctx context.Context, query string, limit int) ([]city.Photo, error) {
	fsqID, err := c.searchPlace(ctx, query)
	if err != nil {
		return nil, err
	}
	if fsqID == "" {
		return nil, nil
	}
	return c.placePhotos(ctx, fsqID, limit)
}

func (c *Client) searchPlace(ctx context.Context, query string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/places/search?%s", c.baseURL, params.Encode())

	var response placeSearchResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return "", cserrors.NewProviderUnavailableError(ProviderName, err.Error())
	}
	if len(response.Results) == 0 {
		return "", nil
	}
	return response.Results[0].FsqID, nil
}

func (c *Client) placePhotos(ctx context.Context, fsqID string, limit int) ([]city.Photo, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", "POPULAR")

	endpoint := fmt.Sprintf("%s/places/%s/photos?%s", c.baseURL, url.PathEscape(fsqID), params.Encode())

	var response []placePhoto
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, cserrors.NewProviderUnavailableError(ProviderName, err.Error())
	}

	photos := make([]city.Photo, 0, len(response))
	for _, item := range response {
		if item.Prefix == "" || item.Suffix == "" {
			continue
		}
		photos = append(photos, city.Photo{
			ID:       item.ID,
			Source:   ProviderName,
			Width:    item.Width,
			Height:   item.Height,
			RawURL:   item.Prefix + "original" + item.Suffix,
			Variants: buildVariants(item.Prefix, item.Suffix),
		})
	}
	return photos, nil
}

// buildVariants composes sized URLs using Foursquare's prefix/size/suffix
// convention.
func buildVariants(prefix, suffix string) map[city.SizeClass]string {
	return map[city.SizeClass]string{
		city.SizeThumb: prefix + thumbSize + suffix,
		city.SizeHero:  prefix + heroSize + suffix,
	}
}
