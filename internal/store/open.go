package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/keepsake-app/keepsake/internal/config"
	"github.com/keepsake-app/keepsake/internal/log"
)

// OpenBackend builds the backend selected by cfg for the project at root.
// A SQLite file that is not a usable database is moved aside, logged as
// store_corrupt and replaced with an empty one.
func OpenBackend(cfg *config.Config, root string, logger *log.Logger) (Backend, error) {
	path := cfg.StoragePath(root)
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileBackend(path)
	case config.BackendSQLite, "":
		return openSQLite(path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func openSQLite(path string, logger *log.Logger) (Backend, error) {
	b, err := NewSQLiteBackend(path)
	if err == nil || !isCorruptDB(err) {
		return b, err
	}

	moved := fmt.Sprintf("%s.corrupt-%s", path, time.Now().UTC().Format("20060102T150405"))
	if rerr := os.Rename(path, moved); rerr != nil {
		return nil, fmt.Errorf("moving corrupt database aside: %w", rerr)
	}
	_ = logger.Append(log.LogEvent{
		Event: log.EventStoreCorrupt,
		Error: err.Error(),
		Data:  map[string]interface{}{"moved_to": moved},
	})
	return NewSQLiteBackend(path)
}

// isCorruptDB reports whether err means the file is damaged or not SQLite.
func isCorruptDB(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrNotADB || se.Code == sqlite3.ErrCorrupt
}
