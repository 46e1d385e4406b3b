// Package pipeline resolves a usable image for a city by walking an
// ordered provider chain and falling back to a deterministic placeholder.
// Resolution is total: every invocation ends with a thumb and hero URL.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/tripfolio/cityscout/internal/city"
)

// PhotoProvider is a photo search API adapter. All three photo backends
// (Unsplash, Pexels, Foursquare) satisfy this with their cached clients.
type PhotoProvider interface {
	Name() string
	SearchPhotos(ctx context.Context, query string, perPage, page int) ([]city.Photo, error)
}

// SummaryProvider yields an article summary whose lead image serves as the
// last real image source before the placeholder fallback.
type SummaryProvider interface {
	Name() string
	GetSummary(ctx context.Context, title, locale string) (*city.Summary, error)
}

const (
	// FallbackSource is the Resolution.Source value for placeholder images.
	FallbackSource = "fallback"

	defaultPerPage = 10
	defaultLocale  = "en"
)

// Resolver runs the image resolution chain. Providers are tried strictly
// in slice order; a later provider is only consulted after all earlier
// ones returned no usable photo.
type Resolver struct {
	photos    []PhotoProvider
	summaries SummaryProvider
	perPage   int
	locale    string
	force     bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithForceRefresh makes the resolver re-resolve cities whose existing
// image would otherwise be accepted as-is.
func WithForceRefresh(force bool) ResolverOption {
	return func(r *Resolver) {
		r.force = force
	}
}

// WithPerPage sets how many photos are requested per provider query.
func WithPerPage(perPage int) ResolverOption {
	return func(r *Resolver) {
		if perPage > 0 {
			r.perPage = perPage
		}
	}
}

// WithLocale sets the summary provider locale.
func WithLocale(locale string) ResolverOption {
	return func(r *Resolver) {
		if locale != "" {
			r.locale = locale
		}
	}
}

// NewResolver builds a resolver over the given photo providers and an
// optional summary provider (nil skips the lead-image step).
func NewResolver(photos []PhotoProvider, summaries SummaryProvider, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		photos:    photos,
		summaries: summaries,
		perPage:   defaultPerPage,
		locale:    defaultLocale,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces image URLs for the city. It never fails: provider
// errors are swallowed, recorded on the Resolution, and the chain falls
// through to the deterministic placeholder at worst. Resolve has no side
// effects; persisting the outcome is the caller's job.
func (r *Resolver) Resolve(ctx context.Context, c *city.City) city.Resolution {
	if !r.force && UsableImageURL(c.ImageURL) {
		return city.Resolution{
			Updated:     false,
			ThumbURL:    c.ThumbnailURL,
			HeroURL:     c.ImageURL,
			Source:      c.ImageSource,
			Attribution: c.Attribution,
		}
	}

	query := c.LocationHint() + " travel"
	var lastErr error

	for _, provider := range r.photos {
		photos, err := provider.SearchPhotos(ctx, query, r.perPage, 1)
		if err != nil {
			slog.Warn("Photo provider failed, falling through",
				"provider", provider.Name(), "city", c.Name, "error", err)
			lastErr = err
			continue
		}
		for i := range photos {
			photo := &photos[i]
			if photo.RawURL == "" {
				continue
			}
			return city.Resolution{
				Updated:     true,
				ThumbURL:    photo.Variant(city.SizeThumb),
				HeroURL:     photo.Variant(city.SizeHero),
				Source:      provider.Name(),
				Attribution: photo.Attribution,
				Err:         lastErr,
			}
		}
		slog.Debug("Photo provider returned no results",
			"provider", provider.Name(), "city", c.Name, "query", query)
	}

	if r.summaries != nil {
		summary, err := r.summaries.GetSummary(ctx, c.Name, r.locale)
		switch {
		case err != nil:
			slog.Warn("Summary provider failed, falling through",
				"provider", r.summaries.Name(), "city", c.Name, "error", err)
			lastErr = err
		case summary != nil && UsableImageURL(summary.LeadImageURL):
			thumb := summary.ThumbnailURL
			if thumb == "" {
				thumb = summary.LeadImageURL
			}
			return city.Resolution{
				Updated:     true,
				ThumbURL:    thumb,
				HeroURL:     summary.LeadImageURL,
				Source:      r.summaries.Name(),
				Attribution: summary.Title + " (Wikipedia)",
				Err:         lastErr,
			}
		}
	}

	thumb, hero := PlaceholderURLs(c)
	slog.Debug("All providers exhausted, using deterministic placeholder",
		"city", c.Name, "thumb", thumb)
	return city.Resolution{
		Updated:  true,
		ThumbURL: thumb,
		HeroURL:  hero,
		Source:   FallbackSource,
		Err:      lastErr,
	}
}
