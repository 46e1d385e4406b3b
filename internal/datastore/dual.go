package datastore

import (
	"log/slog"

	"github.com/tripfolio/cityscout/internal/city"
)

// DualStore wraps the primary SQLite engine with the JSON blob fallback.
// When the primary engine fails to open, the store switches to fallback
// mode permanently for the session rather than retrying.
type DualStore struct {
	primary     *SQLiteStore
	fallback    *FallbackStore
	active      Store
	mode        Mode
	initialized bool
}

// Open creates a DualStore over the given SQLite path and fallback blob
// path. Initialize decides which backend actually serves the session.
func Open(dbPath, fallbackPath string) *DualStore {
	return &DualStore{
		primary:  NewSQLiteStore(dbPath),
		fallback: NewFallbackStore(fallbackPath),
	}
}

// Initialize attempts the primary engine first; on any failure it logs and
// switches to the fallback backend for the rest of the session. Safe to
// call multiple times.
func (s *DualStore) Initialize() error {
	if s.initialized {
		return nil
	}

	if err := s.primary.Initialize(); err != nil {
		slog.Warn("Primary store unavailable, switching to fallback mode", "error", err)
		if err := s.fallback.Initialize(); err != nil {
			return err
		}
		s.active = s.fallback
		s.mode = ModeFallback
		s.initialized = true
		return nil
	}

	s.active = s.primary
	s.mode = ModeSQLite
	s.initialized = true
	return nil
}

// Mode reports which backend is serving the session. Only meaningful after
// Initialize.
func (s *DualStore) Mode() Mode {
	return s.mode
}

func (s *DualStore) ensure() error {
	if s.initialized {
		return nil
	}
	return s.Initialize()
}

// Put upserts a single city by id.
func (s *DualStore) Put(c *city.City) error {
	if err := s.ensure(); err != nil {
		return err
	}
	return s.active.Put(c)
}

// PutMany upserts a batch of cities.
func (s *DualStore) PutMany(cities []city.City) error {
	if err := s.ensure(); err != nil {
		return err
	}
	return s.active.PutMany(cities)
}

// Get returns the city with the given id, or nil when absent.
func (s *DualStore) Get(id string) (*city.City, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	return s.active.Get(id)
}

// GetAll returns every stored city sorted by name.
func (s *DualStore) GetAll() ([]city.City, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	return s.active.GetAll()
}

// Delete removes the city with the given id.
func (s *DualStore) Delete(id string) error {
	if err := s.ensure(); err != nil {
		return err
	}
	return s.active.Delete(id)
}

// Clear removes every stored city.
func (s *DualStore) Clear() error {
	if err := s.ensure(); err != nil {
		return err
	}
	return s.active.Clear()
}

// Search matches the substring against name, country and tags.
func (s *DualStore) Search(substr string) ([]city.City, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	return s.active.Search(substr)
}

// Close releases whichever backend is active.
func (s *DualStore) Close() error {
	if !s.initialized || s.active == nil {
		return nil
	}
	return s.active.Close()
}
