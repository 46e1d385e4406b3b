// Package city defines the core domain types shared across the store,
// the provider adapters and the image resolution pipeline.
package city

import (
	"strings"
	"time"
)

// SizeClass identifies a rendition size of a resolved image.
type SizeClass string

const (
	// SizeThumb is the listing/card rendition.
	SizeThumb SizeClass = "thumb"
	// SizeHero is the full-width page header rendition.
	SizeHero SizeClass = "hero"
)

// City is a single destination record as persisted in the datastore.
type City struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Country      string    `json:"country,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	ImageSource  string    `json:"image_source,omitempty"`
	Attribution  string    `json:"attribution,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// LocationHint returns the human-readable location string used when
// composing provider search queries ("Lisbon Portugal").
func (c *City) LocationHint() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + " " + c.Country
}

// MatchesSubstring reports whether the city's name, country or any tag
// contains the given substring, case-insensitively.
func (c *City) MatchesSubstring(substr string) bool {
	if substr == "" {
		return true
	}
	needle := strings.ToLower(substr)
	if strings.Contains(strings.ToLower(c.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Country), needle) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Photo is a normalized photo search result. Provider adapters convert
// their own response shapes into this type at the adapter boundary, with
// size variants already built using the provider's URL conventions.
type Photo struct {
	ID          string               `json:"id"`
	Source      string               `json:"source"`
	Width       int                  `json:"width,omitempty"`
	Height      int                  `json:"height,omitempty"`
	RawURL      string               `json:"raw_url"`
	Variants    map[SizeClass]string `json:"variants,omitempty"`
	Attribution string               `json:"attribution,omitempty"`
	AttrURL     string               `json:"attr_url,omitempty"`
}

// Variant returns the URL for the requested size class, falling back to
// the raw URL when the adapter did not build that rendition.
func (p *Photo) Variant(size SizeClass) string {
	if url, ok := p.Variants[size]; ok && url != "" {
		return url
	}
	return p.RawURL
}

// Summary is an article summary with an optional lead image.
type Summary struct {
	Title        string `json:"title"`
	Extract      string `json:"extract,omitempty"`
	LeadImageURL string `json:"lead_image_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Lang         string `json:"lang,omitempty"`
}

// Resolution is the outcome of one image resolution pipeline invocation.
// It is transient: the seeder persists the URLs back onto the City, the
// Resolution itself is never stored.
type Resolution struct {
	// Updated is false when the existing image was accepted as-is.
	Updated bool
	// ThumbURL and HeroURL are always non-empty when Updated is true;
	// the pipeline terminates in the deterministic fallback at worst.
	ThumbURL string
	HeroURL  string
	// Source names the provider that produced the image ("unsplash",
	// "pexels", "foursquare", "wikipedia" or "fallback").
	Source      string
	Attribution string
	// Err records a swallowed provider error for reporting. A non-nil
	// Err never means the resolution failed to produce URLs.
	Err error
}
