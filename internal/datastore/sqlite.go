package datastore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tripfolio/cityscout/internal/city"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

var errNotInitialized = fmt.Errorf("store not initialized")

const citiesSchema = `
CREATE TABLE IF NOT EXISTS cities (
	id TEXT PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	country TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	summary TEXT NOT NULL DEFAULT '',
	image_url TEXT NOT NULL DEFAULT '',
	thumbnail_url TEXT NOT NULL DEFAULT '',
	image_source TEXT NOT NULL DEFAULT '',
	attribution TEXT NOT NULL DEFAULT '',
	updated_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_cities_name ON cities(name);
CREATE INDEX IF NOT EXISTS idx_cities_country ON cities(country);
`

// SQLiteStore implements the Store interface on the primary SQLite engine.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLiteStore instance. The database is not
// opened until Initialize.
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{dbPath: dbPath}
}

// Initialize opens the database and creates the schema. Calling it again
// on an open store is a no-op.
func (s *SQLiteStore) Initialize() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(citiesSchema); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create cities table: %w", err)
	}

	s.db = db
	return nil
}

// Mode returns ModeSQLite.
func (s *SQLiteStore) Mode() Mode {
	return ModeSQLite
}

// Put upserts a single city by id.
func (s *SQLiteStore) Put(c *city.City) error {
	if s.db == nil {
		return cserrors.NewStoreWriteError("put", errNotInitialized)
	}
	tags, err := encodeTags(c.Tags)
	if err != nil {
		return cserrors.NewStoreWriteError("put", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO cities
		(id, name, country, tags, summary, image_url, thumbnail_url, image_source, attribution, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Country, tags, c.Summary, c.ImageURL, c.ThumbnailURL, c.ImageSource, c.Attribution, normalizeTime(c.UpdatedAt))
	if err != nil {
		return cserrors.NewStoreWriteError("put", err)
	}
	return nil
}

// PutMany upserts a batch of cities inside one transaction; a failure on
// any record rolls back the whole batch.
func (s *SQLiteStore) PutMany(cities []city.City) error {
	if len(cities) == 0 {
		return nil
	}
	if s.db == nil {
		return cserrors.NewStoreWriteError("putmany", errNotInitialized)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return cserrors.NewStoreWriteError("putmany", err)
	}
	defer func() {
		// Rollback is a no-op after a successful commit
		_ = tx.Rollback()
	}()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO cities
		(id, name, country, tags, summary, image_url, thumbnail_url, image_source, attribution, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return cserrors.NewStoreWriteError("putmany", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range cities {
		c := &cities[i]
		tags, err := encodeTags(c.Tags)
		if err != nil {
			return cserrors.NewStoreWriteError("putmany", err)
		}
		if _, err := stmt.Exec(c.ID, c.Name, c.Country, tags, c.Summary, c.ImageURL, c.ThumbnailURL, c.ImageSource, c.Attribution, normalizeTime(c.UpdatedAt)); err != nil {
			return cserrors.NewStoreWriteError("putmany", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return cserrors.NewStoreWriteError("putmany", err)
	}
	return nil
}

// Get returns the city with the given id, or nil when absent. Read errors
// degrade to nil so callers stay resilient.
func (s *SQLiteStore) Get(id string) (*city.City, error) {
	if s.db == nil {
		return nil, nil
	}
	row := s.db.QueryRow(selectColumns+" FROM cities WHERE id = ?", id)

	c, err := scanCity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Warn("Failed to read city, returning nil", "id", id, "error", err)
		return nil, nil
	}
	return c, nil
}

// GetAll returns every stored city sorted by name.
func (s *SQLiteStore) GetAll() ([]city.City, error) {
	return s.queryCities(selectColumns + " FROM cities ORDER BY name")
}

// Delete removes the city with the given id.
func (s *SQLiteStore) Delete(id string) error {
	if s.db == nil {
		return cserrors.NewStoreWriteError("delete", errNotInitialized)
	}
	if _, err := s.db.Exec("DELETE FROM cities WHERE id = ?", id); err != nil {
		return cserrors.NewStoreWriteError("delete", err)
	}
	return nil
}

// Clear removes every stored city.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return cserrors.NewStoreWriteError("clear", errNotInitialized)
	}
	if _, err := s.db.Exec("DELETE FROM cities"); err != nil {
		return cserrors.NewStoreWriteError("clear", err)
	}
	return nil
}

// Search matches the substring case-insensitively against name, country
// and tags. Results come back sorted by name so repeated calls with no
// intervening writes are stable.
func (s *SQLiteStore) Search(substr string) ([]city.City, error) {
	pattern := "%" + strings.ToLower(substr) + "%"
	return s.queryCities(selectColumns+`
		FROM cities
		WHERE LOWER(name) LIKE ? OR LOWER(country) LIKE ? OR LOWER(tags) LIKE ?
		ORDER BY name
	`, pattern, pattern, pattern)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

const selectColumns = `SELECT id, name, country, tags, summary, image_url, thumbnail_url, image_source, attribution, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCity(row rowScanner) (*city.City, error) {
	var c city.City
	var tags string
	var updatedAt sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Country, &tags, &c.Summary, &c.ImageURL, &c.ThumbnailURL, &c.ImageSource, &c.Attribution, &updatedAt)
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	}
	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		slog.Warn("Failed to decode city tags", "id", c.ID, "error", err)
		c.Tags = nil
	}
	return &c, nil
}

func (s *SQLiteStore) queryCities(query string, args ...any) ([]city.City, error) {
	if s.db == nil {
		return nil, nil
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		slog.Warn("Failed to query cities, returning empty result", "error", err)
		return nil, nil
	}
	defer func() { _ = rows.Close() }()

	var cities []city.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			slog.Warn("Failed to scan city row, skipping", "error", err)
			continue
		}
		cities = append(cities, *c)
	}
	if err := rows.Err(); err != nil {
		slog.Warn("Error iterating city rows", "error", err)
	}
	return cities, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

func normalizeTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
