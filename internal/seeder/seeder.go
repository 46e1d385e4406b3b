// Package seeder drives the image resolution pipeline across a collection
// of cities and persists each outcome before moving to the next item.
package seeder

import (
	"context"
	"log/slog"
	"time"

	"github.com/tripfolio/cityscout/internal/city"
	"github.com/tripfolio/cityscout/internal/datastore"
	cserrors "github.com/tripfolio/cityscout/internal/errors"
)

// DefaultDelay is the pause inserted between items. It exists purely for
// provider rate-limit hygiene, not correctness.
const DefaultDelay = 250 * time.Millisecond

// ImageResolver resolves an image for one city. *pipeline.Resolver
// satisfies this.
type ImageResolver interface {
	Resolve(ctx context.Context, c *city.City) city.Resolution
}

// ProgressFunc is invoked after each item with the city's name, the
// 1-based index of the item just finished, and the batch total. A
// returned StopProcessingError ends the batch before the next item;
// any other error is logged and the run continues.
type ProgressFunc func(name string, index, total int) error

// CoverFunc downloads a local copy of the resolved hero image. A failure
// is logged, never counted against the item.
type CoverFunc func(ctx context.Context, c *city.City, heroURL string) error

// ItemError records a per-item failure inside a batch.
type ItemError struct {
	ID  string
	Err error
}

// Report summarizes one seeding run.
type Report struct {
	SuccessCount int
	FailureCount int
	SkippedCount int
	Errors       []ItemError
}

// Seeder runs batches strictly sequentially to respect the shared
// provider rate limits.
type Seeder struct {
	resolver   ImageResolver
	store      datastore.Store
	delay      time.Duration
	onProgress ProgressFunc
	coverFunc  CoverFunc
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithDelay overrides the inter-item delay. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(s *Seeder) {
		s.delay = d
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Seeder) {
		s.onProgress = fn
	}
}

// WithCoverFunc registers a cover download hook, called for every item
// that resolved with an update.
func WithCoverFunc(fn CoverFunc) Option {
	return func(s *Seeder) {
		s.coverFunc = fn
	}
}

// New builds a seeder over the given resolver and store.
func New(resolver ImageResolver, store datastore.Store, opts ...Option) *Seeder {
	s := &Seeder{
		resolver: resolver,
		store:    store,
		delay:    DefaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes the cities one at a time. A failing item is recorded and
// the batch continues; nothing short of context cancellation or an
// explicit stop-processing error ends the run early. Each updated city is
// persisted before the next item starts.
func (s *Seeder) Run(ctx context.Context, cities []city.City) *Report {
	report := &Report{}
	total := len(cities)

	for i := range cities {
		if i > 0 && s.delay > 0 {
			if !sleepCtx(ctx, s.delay) {
				slog.Info("Seeding cancelled", "processed", i, "total", total)
				return report
			}
		}
		if ctx.Err() != nil {
			slog.Info("Seeding cancelled", "processed", i, "total", total)
			return report
		}

		c := &cities[i]
		err := s.processOne(ctx, c)
		switch {
		case err == nil:
			report.SuccessCount++
		case cserrors.IsStopProcessingError(err):
			slog.Info("Seeding stopped", "reason", err, "processed", i, "total", total)
			return report
		case isSkip(err):
			report.SkippedCount++
		default:
			report.FailureCount++
			report.Errors = append(report.Errors, ItemError{ID: c.ID, Err: err})
			slog.Warn("Seeding item failed, continuing", "city", c.Name, "id", c.ID, "error", err)
		}

		if s.onProgress != nil {
			if err := s.onProgress(c.Name, i+1, total); err != nil {
				if cserrors.IsStopProcessingError(err) {
					slog.Info("Seeding stopped", "reason", err, "processed", i+1, "total", total)
					return report
				}
				slog.Warn("Progress callback failed, continuing", "error", err)
			}
		}
	}

	return report
}

// errSkipped marks an item whose existing image was accepted as-is.
type skipError struct{}

func (skipError) Error() string { return "image already resolved" }

func isSkip(err error) bool {
	_, ok := err.(skipError)
	return ok
}

func (s *Seeder) processOne(ctx context.Context, c *city.City) error {
	res := s.resolver.Resolve(ctx, c)
	if res.Err != nil {
		slog.Debug("Resolution recovered from provider error", "city", c.Name, "error", res.Err)
	}
	if !res.Updated {
		return skipError{}
	}

	c.ImageURL = res.HeroURL
	c.ThumbnailURL = res.ThumbURL
	c.ImageSource = res.Source
	c.Attribution = res.Attribution
	c.UpdatedAt = time.Now().UTC()

	if err := s.store.Put(c); err != nil {
		return err
	}
	slog.Debug("City image updated", "city", c.Name, "source", res.Source)

	if s.coverFunc != nil && res.Source != "fallback" {
		if err := s.coverFunc(ctx, c, res.HeroURL); err != nil {
			slog.Warn("Cover download failed", "city", c.Name, "error", err)
		}
	}
	return nil
}

// sleepCtx waits for the duration and reports false when the context was
// cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
