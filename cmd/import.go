package cmd

import (
	"log/slog"

	"github.com/tripfolio/cityscout/internal/importer"
)

// ImportCmd represents the import command
type ImportCmd struct {
	File string `short:"f" help:"Path to a CSV or YAML city file" required:""`
}

func (i *ImportCmd) Run() error {
	cities, err := importer.Load(i.File)
	if err != nil {
		return err
	}
	if len(cities) == 0 {
		slog.Warn("No cities found in import file", "file", i.File)
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.PutMany(cities); err != nil {
		return err
	}

	slog.Info("Import finished", "file", i.File, "cities", len(cities))
	return nil
}
