package csvutil

import (
	"errors"
	"testing"

	"github.com/tripfolio/cityscout/internal/testutil"
)

func TestProcessCSV(t *testing.T) {
	// Create a sandboxed test environment
	env := testutil.NewTestEnv(t)

	csvContent := `name,country,tags
Lisbon,Portugal,coastal
Porto,Portugal,wine
Tokyo,Japan,megacity
`
	env.WriteFileString("cities.csv", csvContent)
	csvPath := env.Path("cities.csv")

	type row struct {
		Name    string
		Country string
		Tags    string
	}

	parser := func(record []string) (row, error) {
		return row{
			Name:    record[0],
			Country: record[1],
			Tags:    record[2],
		}, nil
	}

	rows, err := ProcessCSV(csvPath, parser, Options{})
	if err != nil {
		t.Fatalf("ProcessCSV() error = %v", err)
	}

	expected := []row{
		{"Lisbon", "Portugal", "coastal"},
		{"Porto", "Portugal", "wine"},
		{"Tokyo", "Japan", "megacity"},
	}

	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
	}
	for i, r := range rows {
		if r != expected[i] {
			t.Errorf("rows[%d] = %v, want %v", i, r, expected[i])
		}
	}
}

func TestProcessCSV_SkipInvalid(t *testing.T) {
	env := testutil.NewTestEnv(t)

	csvContent := `name,country
Lisbon,Portugal
BadRow,
Porto,Portugal
`
	env.WriteFileString("cities.csv", csvContent)

	parser := func(record []string) (string, error) {
		if record[1] == "" {
			return "", errors.New("missing country")
		}
		return record[0], nil
	}

	names, err := ProcessCSV(env.Path("cities.csv"), parser, Options{SkipInvalid: true})
	if err != nil {
		t.Fatalf("ProcessCSV() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 valid rows, got %d", len(names))
	}
}

func TestProcessCSV_TrimFields(t *testing.T) {
	env := testutil.NewTestEnv(t)

	csvContent := "name,country\n  Lisbon , Portugal \n"
	env.WriteFileString("cities.csv", csvContent)

	parser := func(record []string) ([]string, error) {
		return record, nil
	}

	rows, err := ProcessCSV(env.Path("cities.csv"), parser, Options{TrimFields: true})
	if err != nil {
		t.Fatalf("ProcessCSV() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][0] != "Lisbon" || rows[0][1] != "Portugal" {
		t.Errorf("fields should be trimmed, got %v", rows[0])
	}
}

func TestProcessCSV_InvalidRecordFailsWithoutSkip(t *testing.T) {
	env := testutil.NewTestEnv(t)

	env.WriteFileString("cities.csv", "name\nLisbon\n")

	parser := func(record []string) (string, error) {
		return "", errors.New("always invalid")
	}

	_, err := ProcessCSV(env.Path("cities.csv"), parser, Options{})
	if err == nil {
		t.Error("expected error for invalid record, got nil")
	}
}

func TestProcessCSV_EmptyFile(t *testing.T) {
	env := testutil.NewTestEnv(t)

	env.WriteFileString("empty.csv", "")

	parser := func(record []string) (string, error) {
		return record[0], nil
	}

	_, err := ProcessCSV(env.Path("empty.csv"), parser, Options{})
	if err == nil {
		t.Error("expected error for empty file, got nil")
	}
}

func TestProcessCSV_FileNotFound(t *testing.T) {
	parser := func(record []string) (string, error) {
		return record[0], nil
	}

	_, err := ProcessCSV("/nonexistent/file.csv", parser, Options{})
	if err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}
