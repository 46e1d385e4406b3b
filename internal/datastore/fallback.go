package datastore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tripfolio/cityscout/internal/city"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

// fallbackBlobKey is the well-known top-level key the whole collection is
// serialized under in the fallback file.
const fallbackBlobKey = "cities"

// FallbackStore implements the Store interface on a single JSON blob file.
// Every mutation is a full read-modify-write of the backing file, which is
// slow but keeps the tool usable when SQLite cannot be opened at all.
type FallbackStore struct {
	path string
}

// NewFallbackStore creates a FallbackStore backed by the given file path.
func NewFallbackStore(path string) *FallbackStore {
	return &FallbackStore{path: path}
}

// Initialize creates the parent directory. The blob file itself is created
// lazily on first write; a missing file reads as an empty collection.
func (s *FallbackStore) Initialize() error {
	dir := filepath.Dir(s.path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create fallback store directory: %w", err)
	}
	return nil
}

// Mode returns ModeFallback.
func (s *FallbackStore) Mode() Mode {
	return ModeFallback
}

// Put upserts a single city by id.
func (s *FallbackStore) Put(c *city.City) error {
	return s.PutMany([]city.City{*c})
}

// PutMany merges the batch into the decoded collection and writes the blob
// back once.
func (s *FallbackStore) PutMany(cities []city.City) error {
	if len(cities) == 0 {
		return nil
	}

	records := s.load()
	for i := range cities {
		records[cities[i].ID] = cities[i]
	}
	return s.save(records)
}

// Get returns the city with the given id, or nil when absent.
func (s *FallbackStore) Get(id string) (*city.City, error) {
	records := s.load()
	if c, ok := records[id]; ok {
		return &c, nil
	}
	return nil, nil
}

// GetAll returns every stored city sorted by name.
func (s *FallbackStore) GetAll() ([]city.City, error) {
	return sortedValues(s.load()), nil
}

// Delete removes the city with the given id.
func (s *FallbackStore) Delete(id string) error {
	records := s.load()
	if _, ok := records[id]; !ok {
		return nil
	}
	delete(records, id)
	return s.save(records)
}

// Clear removes every stored city by truncating the blob.
func (s *FallbackStore) Clear() error {
	return s.save(map[string]city.City{})
}

// Search matches the substring case-insensitively against name, country
// and tags, sorted by name.
func (s *FallbackStore) Search(substr string) ([]city.City, error) {
	needle := strings.ToLower(substr)
	var matched []city.City
	for _, c := range sortedValues(s.load()) {
		if c.MatchesSubstring(needle) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// Close is a no-op; the fallback store holds no open handles.
func (s *FallbackStore) Close() error {
	return nil
}

// load reads the whole collection. Read failures degrade to an empty
// collection, matching the store's read semantics.
func (s *FallbackStore) load() map[string]city.City {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read fallback store, treating as empty", "path", s.path, "error", err)
		}
		return map[string]city.City{}
	}

	var blob map[string]map[string]city.City
	if err := json.Unmarshal(data, &blob); err != nil {
		slog.Warn("Failed to decode fallback store, treating as empty", "path", s.path, "error", err)
		return map[string]city.City{}
	}

	records, ok := blob[fallbackBlobKey]
	if !ok || records == nil {
		return map[string]city.City{}
	}
	return records
}

func (s *FallbackStore) save(records map[string]city.City) error {
	blob := map[string]map[string]city.City{fallbackBlobKey: records}
	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return cserrors.NewStoreWriteError("save", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return cserrors.NewStoreWriteError("save", err)
	}
	return nil
}

func sortedValues(records map[string]city.City) []city.City {
	cities := make([]city.City, 0, len(records))
	for _, c := range records {
		cities = append(cities, c)
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].Name == cities[j].Name {
			return cities[i].ID < cities[j].ID
		}
		return cities[i].Name < cities[j].Name
	})
	return cities
}
