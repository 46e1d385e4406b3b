package unsplash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/cityscout/internal/cache"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
	"github.com/tripfolio/cityscout/internal/testutil"
)

func setupCacheEnv(t *testing.T) {
	t.Helper()

	env := testutil.NewTestEnv(t)
	viper.Reset()
	viper.Set("cache.dbfile", env.Path("cache.db"))
	viper.Set("cache.ttl", "1h")

	require.NoError(t, cache.ResetGlobalCache())
	t.Cleanup(func() {
		_ = cache.ResetGlobalCache()
		viper.Reset()
	})
}

func searchPayload() map[string]any {
	return map[string]any{
		"total": 1,
		"results": []map[string]any{
			{
				"id":     "abc123",
				"width":  4000,
				"height": 3000,
				"urls": map[string]any{
					"raw": "https://images.unsplash.com/photo-1?ixid=xyz",
				},
				"user": map[string]any{
					"name":  "Jane Doe",
					"links": map[string]any{"html": "https://unsplash.com/@janedoe"},
				},
			},
		},
	}
}

func TestSearchPhotos_BuildsSizeVariants(t *testing.T) {
	setupCacheEnv(t)

	var capturedQuery url.Values
	var capturedAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.Query()
		capturedAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(searchPayload()))
	}))
	defer server.Close()

	client := NewClient("test-access-key", WithBaseURL(server.URL))

	photos, err := client.SearchPhotos(context.Background(), "Lisbon Portugal travel", 5, 1)
	require.NoError(t, err)
	require.Len(t, photos, 1)

	photo := photos[0]
	assert.Equal(t, "abc123", photo.ID)
	assert.Equal(t, ProviderName, photo.Source)
	assert.Equal(t, "Jane Doe", photo.Attribution)
	assert.Contains(t, photo.Variants["thumb"], "w=1200")
	assert.Contains(t, photo.Variants["thumb"], "q=80")
	assert.Contains(t, photo.Variants["hero"], "w=1920")
	// Raw URL already has query parameters, so variants must append with &
	assert.Contains(t, photo.Variants["hero"], "?ixid=xyz&w=1920")

	assert.Equal(t, "Lisbon Portugal travel", capturedQuery.Get("query"))
	assert.Equal(t, "5", capturedQuery.Get("per_page"))
	assert.Equal(t, "Client-ID test-access-key", capturedAuth)
}

func TestSearchPhotos_MissingKeyIsProviderUnavailable(t *testing.T) {
	setupCacheEnv(t)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))

	photos, err := client.SearchPhotos(context.Background(), "Lisbon", 5, 1)
	require.Error(t, err)
	assert.True(t, cserrors.IsProviderUnavailable(err))
	assert.Empty(t, photos)
	assert.Zero(t, requests, "no request should be issued without a key")
}

func TestSearchPhotos_SecondCallServedFromCache(t *testing.T) {
	setupCacheEnv(t)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(searchPayload()))
	}))
	defer server.Close()

	client := NewClient("test-access-key", WithBaseURL(server.URL))

	first, err := client.SearchPhotos(context.Background(), "Lisbon Portugal travel", 5, 1)
	require.NoError(t, err)
	second, err := client.SearchPhotos(context.Background(), "Lisbon Portugal travel", 5, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, requests, "second call must be served from cache")
}

func TestSearchPhotos_DifferentPageMissesCache(t *testing.T) {
	setupCacheEnv(t)

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(searchPayload()))
	}))
	defer server.Close()

	client := NewClient("test-access-key", WithBaseURL(server.URL))

	_, err := client.SearchPhotos(context.Background(), "Lisbon", 5, 1)
	require.NoError(t, err)
	_, err = client.SearchPhotos(context.Background(), "Lisbon", 5, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
}

func TestSearchPhotos_ServerErrorIsProviderUnavailable(t *testing.T) {
	setupCacheEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient("test-access-key", WithBaseURL(server.URL))

	_, err := client.SearchPhotos(context.Background(), "Lisbon", 5, 1)
	require.Error(t, err)
	assert.True(t, cserrors.IsProviderUnavailable(err))
}

func TestSearchPhotos_EmptyResults(t *testing.T) {
	setupCacheEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"total": 0, "results": []any{}}))
	}))
	defer server.Close()

	client := NewClient("test-access-key", WithBaseURL(server.URL))

	photos, err := client.SearchPhotos(context.Background(), "nowhere at all", 5, 1)
	require.NoError(t, err)
	assert.Empty(t, photos)
}
