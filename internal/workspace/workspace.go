// Package workspace assembles the per-project dependencies shared by the TUI
// and the CLI subcommands: config, event log, storage and collections.
package workspace

import (
	"context"
	"fmt"

	"github.com/keepsake-app/keepsake/internal/codec"
	"github.com/keepsake-app/keepsake/internal/collection"
	"github.com/keepsake-app/keepsake/internal/config"
	"github.com/keepsake-app/keepsake/internal/content"
	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/log"
	"github.com/keepsake-app/keepsake/internal/store"
)

// Workspace is an opened project. Close releases the storage backend.
type Workspace struct {
	Root     string
	Cfg      *config.Config
	Logger   *log.Logger
	Backend  store.Backend
	Gallery  *collection.Gallery
	Wishlist *collection.Wishlist
	Content  content.Provider
	Codec    *codec.Codec
}

// Open loads config for root and opens its collections. Unreadable stored
// collections come back empty; only setup failures are returned.
func Open(ctx context.Context, root string) (*Workspace, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return OpenWithConfig(ctx, root, cfg)
}

// OpenWithConfig is Open with an already loaded config.
func OpenWithConfig(ctx context.Context, root string, cfg *config.Config) (*Workspace, error) {
	logger, err := log.NewLogger(root)
	if err != nil {
		return nil, err
	}

	cont, err := content.Load(cfg.ContentPath(root))
	if err != nil {
		return nil, err
	}

	backend, err := store.OpenBackend(cfg, root, logger)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	return &Workspace{
		Root:     root,
		Cfg:      cfg,
		Logger:   logger,
		Backend:  backend,
		Gallery:  collection.OpenGallery(ctx, backend, logger),
		Wishlist: collection.OpenWishlist(ctx, backend, logger),
		Content:  cont,
		Codec:    codec.New(codec.Options{MaxWidth: cfg.Codec.MaxWidth, Quality: cfg.Codec.Quality}),
	}, nil
}

// NewGate returns a fresh gate at step 1 built from the configured answers.
func (w *Workspace) NewGate() *gate.Gate {
	g := w.Cfg.Gate
	return gate.New(
		gate.Secrets{Year: g.Year, StandardCity: g.StandardCity, ElevatedCity: g.ElevatedCity},
		gate.Hints{Year: g.YearHint, City: g.CityHint},
	)
}

// Unlock runs year and city through a fresh gate and returns the role.
// Non-interactive callers use it to authorize deletions.
func (w *Workspace) Unlock(year, city string) (gate.Role, error) {
	g := w.NewGate()
	if res := g.Submit(year); res.Kind != gate.Advance {
		return gate.RoleNone, fmt.Errorf("gate: %s", res.Reason)
	}
	res := g.Submit(city)
	if res.Kind != gate.Unlock {
		return gate.RoleNone, fmt.Errorf("gate: %s", res.Reason)
	}
	_ = w.Logger.Append(log.LogEvent{Event: log.EventUnlocked, Role: res.Role.String()})
	return res.Role, nil
}

// Close releases the storage backend.
func (w *Workspace) Close() error {
	if w.Backend == nil {
		return nil
	}
	return w.Backend.Close()
}
