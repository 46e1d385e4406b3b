// Package csvutil parses CSV files into typed records.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures ProcessCSV.
type Options struct {
	// FieldsPerRecord is the expected field count per record. Zero lets
	// the first record decide.
	FieldsPerRecord int

	// SkipInvalid logs and drops records the parser rejects instead of
	// failing the whole file.
	SkipInvalid bool

	// TrimFields strips surrounding whitespace from every field before
	// the parser sees it.
	TrimFields bool
}

// ProcessCSV reads filename and parses every data record with parse.
// The first record is treated as a header and skipped. Malformed records
// are logged and skipped; whether a record the parser rejects fails the
// whole file depends on Options.SkipInvalid.
func ProcessCSV[T any](filename string, parse func([]string) (T, error), opts Options) ([]T, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	if opts.FieldsPerRecord > 0 {
		reader.FieldsPerRecord = opts.FieldsPerRecord
	}

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var items []T
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping malformed CSV record", "line", line, "error", err)
			continue
		}

		if opts.TrimFields {
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
		}

		item, err := parse(record)
		if err != nil {
			if opts.SkipInvalid {
				slog.Warn("Skipping invalid CSV record", "line", line, "error", err)
				continue
			}
			return nil, fmt.Errorf("record on line %d: %w", line, err)
		}
		items = append(items, item)
	}

	return items, nil
}
