package cache

// SQL schemas for provider query cache tables.
// All cache tables use "cache_key" as the primary key column for consistency;
// the key encodes (normalized query, page size, page).

// UnsplashCacheSchema defines the schema for Unsplash photo search cache
const UnsplashCacheSchema = `
CREATE TABLE IF NOT EXISTS unsplash_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	ttl_seconds INTEGER NOT NULL DEFAULT 0,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_unsplash_cached_at ON unsplash_cache(cached_at);
`

// PexelsCacheSchema defines the schema for Pexels photo search cache
const PexelsCacheSchema = `
CREATE TABLE IF NOT EXISTS pexels_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	ttl_seconds INTEGER NOT NULL DEFAULT 0,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pexels_cached_at ON pexels_cache(cached_at);
`

// FoursquareCacheSchema defines the schema for Foursquare place photo cache
const FoursquareCacheSchema = `
CREATE TABLE IF NOT EXISTS foursquare_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	ttl_seconds INTEGER NOT NULL DEFAULT 0,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_foursquare_cached_at ON foursquare_cache(cached_at);
`

// WikipediaCacheSchema defines the schema for Wikipedia page summary cache
const WikipediaCacheSchema = `
CREATE TABLE IF NOT EXISTS wikipedia_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	ttl_seconds INTEGER NOT NULL DEFAULT 0,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_wikipedia_cached_at ON wikipedia_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	UnsplashCacheSchema,
	PexelsCacheSchema,
	FoursquareCacheSchema,
	WikipediaCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"unsplash_cache":   true,
	"pexels_cache":     true,
	"foursquare_cache": true,
	"wikipedia_cache":  true,
}
