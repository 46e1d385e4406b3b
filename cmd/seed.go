package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/viper"

	"github.com/tripfolio/cityscout/internal/city"
	"github.com/tripfolio/cityscout/internal/config"
	"github.com/tripfolio/cityscout/internal/covers"
	"github.com/tripfolio/cityscout/internal/foursquare"
	"github.com/tripfolio/cityscout/internal/pexels"
	"github.com/tripfolio/cityscout/internal/pipeline"
	"github.com/tripfolio/cityscout/internal/seeder"
	"github.com/tripfolio/cityscout/internal/tui"
	"github.com/tripfolio/cityscout/internal/unsplash"
	"github.com/tripfolio/cityscout/internal/wikipedia"
)

// SeedCmd represents the seed command
type SeedCmd struct {
	Force          bool          `short:"f" help:"Re-resolve images even when a valid one already exists"`
	Delay          time.Duration `help:"Delay between cities, for provider rate-limit hygiene" default:"250ms"`
	Limit          int           `short:"n" help:"Process at most N cities (0 = all)"`
	Query          string        `short:"q" help:"Only seed cities matching this substring"`
	DownloadCovers bool          `help:"Download resolved hero images into the covers directory"`
	NoTUI          bool          `help:"Disable the interactive progress UI"`
}

func (s *SeedCmd) Run() error {
	config.SetForceRefresh(s.Force)
	config.SetDownloadCovers(s.DownloadCovers)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var cities []city.City
	if s.Query != "" {
		cities, err = store.Search(s.Query)
	} else {
		cities, err = store.GetAll()
	}
	if err != nil {
		return err
	}
	if s.Limit > 0 && len(cities) > s.Limit {
		cities = cities[:s.Limit]
	}
	if len(cities) == 0 {
		slog.Info("No cities to seed")
		return nil
	}

	resolver := pipeline.NewResolver(
		photoProviders(),
		wikipedia.NewClient(),
		pipeline.WithForceRefresh(config.ForceRefresh),
	)

	opts := []seeder.Option{seeder.WithDelay(s.Delay)}
	if config.DownloadCovers {
		downloader := covers.NewDownloader(viper.GetString("covers.dir"),
			covers.WithOverwrite(config.ForceRefresh))
		opts = append(opts, seeder.WithCoverFunc(downloader.Download))
	}

	// Ctrl-C stops cleanly between items.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var runner *tui.ProgressRunner
	if !s.NoTUI && tui.Interactive() {
		runner = tui.NewProgressRunner("Seeding city images", len(cities))
		opts = append(opts, seeder.WithProgress(runner.OnProgress))
	} else {
		opts = append(opts, seeder.WithProgress(func(name string, index, total int) error {
			slog.Info("Processed city", "city", name, "progress", fmt.Sprintf("%d/%d", index, total))
			return nil
		}))
	}

	report := seeder.New(resolver, store, opts...).Run(ctx, cities)
	if runner != nil {
		if err := runner.Finish(); err != nil {
			slog.Warn("Progress UI exited with error", "error", err)
		}
		if runner.Aborted() {
			slog.Info("Seeding aborted from progress UI")
		}
	}

	slog.Info("Seeding finished",
		"updated", report.SuccessCount,
		"skipped", report.SkippedCount,
		"failed", report.FailureCount)
	for _, itemErr := range report.Errors {
		slog.Warn("City failed", "id", itemErr.ID, "error", itemErr.Err)
	}
	return nil
}

// photoProviders builds the provider chain in resolution order. Clients
// with no credential stay in the chain; they answer every query with a
// provider-unavailable error the pipeline swallows.
func photoProviders() []pipeline.PhotoProvider {
	return []pipeline.PhotoProvider{
		unsplash.NewClient(config.UnsplashAccessKey),
		pexels.NewClient(config.PexelsAPIKey),
		foursquare.NewClient(config.FoursquareAPIKey),
	}
}
