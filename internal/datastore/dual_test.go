package datastore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/cityscout/internal/city"
)

func TestDualStore_PrefersPrimaryEngine(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "db.sqlite"), filepath.Join(dir, "fallback.json"))
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, ModeSQLite, store.Mode())

	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome"}))
	got, err := store.Get("c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rome", got.Name)
}

func TestDualStore_SwitchesToFallbackWhenPrimaryUnavailable(t *testing.T) {
	dir := t.TempDir()
	// A directory path cannot be opened as a SQLite database file.
	store := Open(dir, filepath.Join(dir, "fallback.json"))
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, ModeFallback, store.Mode())

	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome"}))
	got, err := store.Get("c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Rome", got.Name)
}

func TestDualStore_FallbackModeIsPermanentForSession(t *testing.T) {
	dir := t.TempDir()
	store := Open(dir, filepath.Join(dir, "fallback.json"))
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { _ = store.Close() })

	require.Equal(t, ModeFallback, store.Mode())

	// Repeated Initialize calls must not flip the mode back.
	require.NoError(t, store.Initialize())
	require.NoError(t, store.Initialize())
	assert.Equal(t, ModeFallback, store.Mode())
}

func TestDualStore_LazyInitializeOnFirstUse(t *testing.T) {
	dir := t.TempDir()
	store := Open(filepath.Join(dir, "db.sqlite"), filepath.Join(dir, "fallback.json"))
	t.Cleanup(func() { _ = store.Close() })

	// No explicit Initialize; the first operation triggers it.
	require.NoError(t, store.Put(&city.City{ID: "c1", Name: "Rome"}))
	assert.Equal(t, ModeSQLite, store.Mode())
}
