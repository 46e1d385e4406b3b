package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/tripfolio/cityscout/internal/cache"
	"github.com/tripfolio/cityscout/internal/config"
	"github.com/tripfolio/cityscout/internal/datastore"
)

// CLI represents the complete command structure for the cityscout application
type CLI struct {
	// Global flags
	DB           string `help:"Path to the SQLite city database" default:"./cityscout.db"`
	FallbackFile string `help:"Path to the JSON fallback store" default:"./cityscout.fallback.json"`
	CacheDBFile  string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL     string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Import ImportCmd `cmd:"" help:"Import cities from a CSV or YAML file"`
	Seed   SeedCmd   `cmd:"" help:"Resolve and persist images for stored cities"`
	List   ListCmd   `cmd:"" help:"List stored cities"`
	Search SearchCmd `cmd:"" help:"Search stored cities by substring"`
	Show   ShowCmd   `cmd:"" help:"Show a single city record"`
	Delete DeleteCmd `cmd:"" help:"Delete a city by id"`
	Cache  CacheCmd  `cmd:"" help:"Query cache maintenance"`
}

// CacheCmd groups cache maintenance subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Clear one provider's query cache"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("cityscout"),
		kong.Description("A tool to curate travel destinations and resolve images for them."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// Store defaults
	viper.SetDefault("store.dbfile", "./cityscout.db")
	viper.SetDefault("store.fallbackfile", "./cityscout.fallback.json")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	// Seeding defaults
	viper.SetDefault("seed.delay", "250ms")
	viper.SetDefault("covers.dir", "./covers/")

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind provider credentials to environment variables
	for key, env := range map[string]string{
		"UnsplashAccessKey": "UNSPLASH_ACCESS_KEY",
		"PexelsAPIKey":      "PEXELS_API_KEY",
		"FoursquareAPIKey":  "FOURSQUARE_API_KEY",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
		slog.Debug("No config file found, using defaults")
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	viper.Set("store.dbfile", cli.DB)
	viper.Set("store.fallbackfile", cli.FallbackFile)
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

// openStore builds the dual-backend store from the configured paths and
// initializes it. The caller owns Close.
func openStore() (*datastore.DualStore, error) {
	store := datastore.Open(viper.GetString("store.dbfile"), viper.GetString("store.fallbackfile"))
	if err := store.Initialize(); err != nil {
		return nil, err
	}
	if store.Mode() == datastore.ModeFallback {
		slog.Warn("Running on the JSON fallback store for this session")
	}
	return store, nil
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("CITYSCOUT_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
