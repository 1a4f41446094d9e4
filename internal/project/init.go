package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/contalivre/contalivre/internal/accounts"
	"github.com/contalivre/contalivre/internal/config"
	"github.com/contalivre/contalivre/internal/indices"
	"github.com/contalivre/contalivre/internal/journal"
	"github.com/contalivre/contalivre/internal/monetary"
	"github.com/contalivre/contalivre/internal/rt17"
	"github.com/contalivre/contalivre/internal/rt6"
)

// Init lays out a new project at dir with the default chart, an empty
// journal, an empty index table and empty adjustment overlays.
func Init(dir, name, entityType string) error {
	for _, d := range []string{"accounts", "journal", "indices", "adjustments"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}
	cfg := config.Default(name, entityType)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	svc := accounts.NewService(accounts.DefaultChart())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	if err := writeFile(journal.Path(dir), func(f *os.File) error { return journal.WriteEntries(f, nil) }); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, cfg.Paths.Indices), func(f *os.File) error { return indices.WriteRows(f, nil) }); err != nil {
		return err
	}
	if err := rt6.SavePartidas(filepath.Join(dir, cfg.Paths.RT6), nil); err != nil {
		return err
	}
	if err := rt17.SavePartidas(filepath.Join(dir, cfg.Paths.RT17), nil); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, cfg.Paths.Overrides), func(f *os.File) error { return monetary.WriteOverrides(f, nil) })
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
