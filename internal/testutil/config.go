package testutil

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/tripfolio/cityscout/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	ForceRefresh      bool
	DownloadCovers    bool
	UnsplashAccessKey string
	PexelsAPIKey      string
	FoursquareAPIKey  string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		ForceRefresh:      config.ForceRefresh,
		DownloadCovers:    config.DownloadCovers,
		UnsplashAccessKey: config.UnsplashAccessKey,
		PexelsAPIKey:      config.PexelsAPIKey,
		FoursquareAPIKey:  config.FoursquareAPIKey,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.ForceRefresh = state.ForceRefresh
	config.DownloadCovers = state.DownloadCovers
	config.UnsplashAccessKey = state.UnsplashAccessKey
	config.PexelsAPIKey = state.PexelsAPIKey
	config.FoursquareAPIKey = state.FoursquareAPIKey
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()

	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults.
// It saves the current state and restores it when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()

	viper.Reset()

	config.ForceRefresh = false
	config.DownloadCovers = false
	config.UnsplashAccessKey = "test-unsplash-key"
	config.PexelsAPIKey = "test-pexels-key"
	config.FoursquareAPIKey = "test-foursquare-key"

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}
