package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/cityscout/internal/city"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store := NewSQLiteStore(filepath.Join(t.TempDir(), "cityscout.db"))
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedFixtureCities(t *testing.T, store Store) {
	t.Helper()

	require.NoError(t, store.PutMany([]city.City{
		{ID: "c1", Name: "Rome", Country: "Italy", Tags: []string{"history", "food"}},
		{ID: "c2", Name: "Tokyo", Country: "Japan", Tags: []string{"food"}},
		{ID: "c3", Name: "Rome-adjacent town", Country: "Italy"},
	}))
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	want := city.City{
		ID:          "x1795",
		Name:        "Lisbon",
		Country:     "Portugal",
		Tags:        []string{"coastal", "food"},
		Summary:     "Capital of Portugal.",
		ImageURL:    "https://img/photoA?w=1920",
		ImageSource: "pexels",
		UpdatedAt:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(&want))

	got, err := store.Get("x1795")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Country, got.Country)
	assert.Equal(t, want.Tags, got.Tags)
	assert.Equal(t, want.ImageURL, got.ImageURL)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, store.Delete("x1795"))
	got, err = store.Get("x1795")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_GetMissingReturnsNil(t *testing.T) {
	store := newTestSQLiteStore(t)

	got, err := store.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_UpsertLastWriteWins(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Roma"}))
	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome", Country: "Italy"}))

	all, err := store.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Rome", all[0].Name)
	assert.Equal(t, "Italy", all[0].Country)
}

func TestSQLiteStore_SearchAcrossFields(t *testing.T) {
	store := newTestSQLiteStore(t)
	seedFixtureCities(t, store)

	testCases := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "matches name substring case-insensitively",
			query:    "rom",
			expected: []string{"Rome", "Rome-adjacent town"},
		},
		{
			name:     "matches country",
			query:    "japan",
			expected: []string{"Tokyo"},
		},
		{
			name:     "matches tags",
			query:    "food",
			expected: []string{"Rome", "Tokyo"},
		},
		{
			name:     "no matches",
			query:    "zzz",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			results, err := store.Search(tc.query)
			require.NoError(t, err)

			var names []string
			for _, c := range results {
				names = append(names, c.Name)
			}
			assert.Equal(t, tc.expected, names)
		})
	}
}

func TestSQLiteStore_SearchIsStableAcrossCalls(t *testing.T) {
	store := newTestSQLiteStore(t)
	seedFixtureCities(t, store)

	first, err := store.Search("rom")
	require.NoError(t, err)
	second, err := store.Search("rom")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSQLiteStore_PutManyIsAtomic(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cityscout.db")
	store := NewSQLiteStore(dbPath)
	require.NoError(t, store.Initialize())

	// Closing the handle makes every statement in the batch fail; nothing
	// from the batch may be visible afterwards.
	require.NoError(t, store.db.Close())

	err := store.PutMany([]city.City{
		{ID: "c1", Name: "Rome"},
		{ID: "c2", Name: "Tokyo"},
	})
	require.Error(t, err)
	assert.True(t, cserrors.IsStoreWriteError(err))

	reopened := NewSQLiteStore(dbPath)
	require.NoError(t, reopened.Initialize())
	t.Cleanup(func() { _ = reopened.Close() })

	all, err := reopened.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteStore_WriteBeforeInitialize(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "cityscout.db"))

	err := store.Put(&city.City{ID: "c1", Name: "Rome"})
	require.Error(t, err)
	assert.True(t, cserrors.IsStoreWriteError(err))
}

func TestSQLiteStore_Clear(t *testing.T) {
	store := newTestSQLiteStore(t)
	seedFixtureCities(t, store)

	require.NoError(t, store.Clear())

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteStore_InitializeIsIdempotent(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Initialize())
	require.NoError(t, store.Initialize())

	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome"}))
}
