package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/cityscout/internal/city"
	"github.com/tripfolio/cityscout/internal/testutil"
)

func newTestFallbackStore(t *testing.T) (*FallbackStore, string) {
	t.Helper()

	env := testutil.NewTestEnv(t)
	path := env.Path("cityscout.fallback.json")
	store := NewFallbackStore(path)
	require.NoError(t, store.Initialize())
	return store, path
}

func TestFallbackStore_RoundTrip(t *testing.T) {
	store, _ := newTestFallbackStore(t)

	want := city.City{ID: "x1795", Name: "Lisbon", Country: "Portugal", Tags: []string{"coastal"}}
	require.NoError(t, store.Put(&want))

	got, err := store.Get("x1795")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	require.NoError(t, store.Delete("x1795"))
	got, err = store.Get("x1795")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFallbackStore_MissingFileReadsAsEmpty(t *testing.T) {
	store, _ := newTestFallbackStore(t)

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	got, err := store.Get("anything")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFallbackStore_BlobLayout(t *testing.T) {
	store, path := newTestFallbackStore(t)

	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome"}))

	// The whole collection lives under one well-known key.
	raw := make(map[string]map[string]city.City)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(content, &raw))
	require.Contains(t, raw, "cities")
	assert.Equal(t, "Rome", raw["cities"]["c1"].Name)
}

func TestFallbackStore_PutManyMergesIntoBlob(t *testing.T) {
	store, _ := newTestFallbackStore(t)

	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome", Country: "Italy"}))
	require.NoError(t, store.PutMany([]city.City{
		{ID: "c1", Name: "Rome", Country: "Italia"},
		{ID: "c2", Name: "Tokyo", Country: "Japan"},
	}))

	all, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Rome", all[0].Name)
	assert.Equal(t, "Italia", all[0].Country)
	assert.Equal(t, "Tokyo", all[1].Name)
}

func TestFallbackStore_SearchAcrossFields(t *testing.T) {
	store, _ := newTestFallbackStore(t)
	seedFixtureCities(t, store)

	results, err := store.Search("ROM")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Rome", results[0].Name)
	assert.Equal(t, "Rome-adjacent town", results[1].Name)

	results, err = store.Search("history")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Rome", results[0].Name)
}

func TestFallbackStore_Clear(t *testing.T) {
	store, _ := newTestFallbackStore(t)
	seedFixtureCities(t, store)

	require.NoError(t, store.Clear())

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFallbackStore_CorruptBlobReadsAsEmpty(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("broken.json")
	env.WriteFileString("broken.json", "{not json")

	store := NewFallbackStore(path)
	require.NoError(t, store.Initialize())

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFallbackStore_InitializeCreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	store := NewFallbackStore(filepath.Join(dir, "nested", "deep", "store.json"))
	require.NoError(t, store.Initialize())

	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome"}))

	got, err := store.Get("c1")
	require.NoError(t, err)
	require.NotNil(t, got)
}
