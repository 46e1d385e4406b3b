// Package fileutil holds small filesystem helpers shared by the cover
// downloader and the import commands.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// SanitizeFilename cleans a filename by replacing problematic characters
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name
}

// BuildCoverFilename creates a standard cover filename from a city name.
// Returns: "Name - cover.jpg"
func BuildCoverFilename(name string) string {
	return SanitizeFilename(name) + " - cover.jpg"
}

// FileExists checks if a file exists at the given path
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

// EnsureDir creates the directory (and parents) for the given file path.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0755)
}
