// Package datastore provides durable keyed storage for city records with a
// degraded fallback backend for when the primary SQLite engine is unavailable.
package datastore

import "github.com/tripfolio/cityscout/internal/city"

// Mode identifies which storage backend a store is operating on.
type Mode string

const (
	// ModeSQLite is the primary storage engine.
	ModeSQLite Mode = "sqlite"
	// ModeFallback is the JSON blob file used when SQLite cannot be opened.
	ModeFallback Mode = "fallback"
)

// Store defines the interface for local city storage.
//
// Failure semantics: read operations degrade (nil/empty result, logged)
// so callers stay resilient; write errors are returned as StoreWriteError
// so a seeding batch can record the item and continue.
type Store interface {
	// Initialize prepares the backend (opens the database, creates the
	// schema). It is idempotent and safe to call multiple times.
	Initialize() error

	// Put upserts a single city by id (last-write-wins).
	Put(c *city.City) error

	// PutMany upserts a batch of cities. In primary mode the batch is
	// transactional: any failure applies none of it.
	PutMany(cities []city.City) error

	// Get returns the city with the given id, or nil when absent.
	Get(id string) (*city.City, error)

	// GetAll returns every stored city, sorted by name.
	GetAll() ([]city.City, error)

	// Delete removes the city with the given id. Deleting a missing id
	// is not an error.
	Delete(id string) error

	// Clear removes every stored city.
	Clear() error

	// Search returns the cities whose name, country or tags contain the
	// substring case-insensitively, sorted by name for stable output.
	Search(substr string) ([]city.City, error)

	// Close releases the backend.
	Close() error
}
