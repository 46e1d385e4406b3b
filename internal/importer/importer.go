// Package importer loads city records from CSV or YAML files so they can
// be seeded into the store.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tripfolio/cityscout/internal/city"
	"github.com/tripfolio/cityscout/internal/csvutil"
)

// Load reads cities from the given file, dispatching on the extension.
// Supported formats: .csv, .yaml/.yml.
func Load(filename string) ([]city.City, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return loadCSV(filename)
	case ".yaml", ".yml":
		return loadYAML(filename)
	default:
		return nil, fmt.Errorf("unsupported import format %q (expected .csv, .yaml or .yml)", filepath.Ext(filename))
	}
}

// CSV column order: id, name, country, tags, summary, image_url.
// Tags are semicolon-separated inside their cell. A missing id gets a
// generated UUID; a missing name invalidates the row.
func loadCSV(filename string) ([]city.City, error) {
	return csvutil.ProcessCSV(filename, parseCSVRecord, csvutil.Options{
		FieldsPerRecord: 6,
		SkipInvalid:     true,
		TrimFields:      true,
	})
}

func parseCSVRecord(record []string) (city.City, error) {
	if len(record) < 6 {
		return city.City{}, fmt.Errorf("expected 6 fields, got %d", len(record))
	}

	c := city.City{
		ID:       record[0],
		Name:     record[1],
		Country:  record[2],
		Tags:     splitTags(record[3]),
		Summary:  record[4],
		ImageURL: record[5],
	}
	return normalize(c)
}

func splitTags(cell string) []string {
	var tags []string
	for _, tag := range strings.Split(cell, ";") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type yamlCity struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Country  string   `yaml:"country"`
	Tags     []string `yaml:"tags"`
	Summary  string   `yaml:"summary"`
	ImageURL string   `yaml:"image_url"`
}

type yamlFile struct {
	Cities []yamlCity `yaml:"cities"`
}

func loadYAML(filename string) ([]city.City, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cities := make([]city.City, 0, len(file.Cities))
	for _, y := range file.Cities {
		c, err := normalize(city.City{
			ID:       y.ID,
			Name:     strings.TrimSpace(y.Name),
			Country:  strings.TrimSpace(y.Country),
			Tags:     y.Tags,
			Summary:  y.Summary,
			ImageURL: y.ImageURL,
		})
		if err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, nil
}

// normalize validates the row and assigns a UUID where the source file
// carries no id.
func normalize(c city.City) (city.City, error) {
	if c.Name == "" {
		return city.City{}, fmt.Errorf("city record has no name")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return c, nil
}
