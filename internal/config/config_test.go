package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetForceRefresh(t *testing.T) {
	// Save the original value to restore after the test
	originalValue := ForceRefresh

	testCases := []struct {
		name     string
		input    bool
		expected bool
	}{
		{
			name:     "set to true",
			input:    true,
			expected: true,
		},
		{
			name:     "set to false",
			input:    false,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetForceRefresh(tc.input)

			// Check that the global variable was updated
			assert.Equal(t, tc.expected, ForceRefresh)
		})
	}

	// Restore the original value
	ForceRefresh = originalValue
}

func TestSetDownloadCovers(t *testing.T) {
	originalValue := DownloadCovers

	SetDownloadCovers(true)
	assert.True(t, DownloadCovers)

	SetDownloadCovers(false)
	assert.False(t, DownloadCovers)

	DownloadCovers = originalValue
}
