package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// ForceRefresh controls whether existing non-placeholder images are
	// re-resolved during seeding
	ForceRefresh bool
	// DownloadCovers controls whether resolved hero images are downloaded
	// to the covers directory during seeding
	DownloadCovers bool
	// UnsplashAccessKey is the API key for the Unsplash photo search API
	UnsplashAccessKey string
	// PexelsAPIKey is the API key for the Pexels photo search API
	PexelsAPIKey string
	// FoursquareAPIKey is the API key for the Foursquare Places API
	FoursquareAPIKey string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("store.dbfile", "./cityscout.db")
	viper.SetDefault("store.fallbackfile", "./cityscout.fallback.json")
	viper.SetDefault("covers.dir", "./covers/")
	viper.SetDefault("seed.delay", "250ms")
	viper.SetDefault("ForceRefresh", false)

	// Get values from viper
	ForceRefresh = viper.GetBool("ForceRefresh")
	DownloadCovers = viper.GetBool("DownloadCovers")
	UnsplashAccessKey = viper.GetString("UnsplashAccessKey")
	PexelsAPIKey = viper.GetString("PexelsAPIKey")
	FoursquareAPIKey = viper.GetString("FoursquareAPIKey")
}

// SetForceRefresh sets the ForceRefresh flag
func SetForceRefresh(force bool) {
	ForceRefresh = force
}

// SetDownloadCovers sets the DownloadCovers flag
func SetDownloadCovers(download bool) {
	DownloadCovers = download
}
