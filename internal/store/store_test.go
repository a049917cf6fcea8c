package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/keepsake-app/keepsake/internal/config"
	"github.com/keepsake-app/keepsake/internal/log"
)

type record struct {
	ID   string `json:"id"`
	Seen bool   `json:"seen"`
}

// failingBackend wraps a backend and fails every Put while fail is set.
type failingBackend struct {
	Backend
	fail bool
}

func (f *failingBackend) Put(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Backend.Put(ctx, key, value)
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()
	fb, err := NewFileBackend(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	sb, err := NewSQLiteBackend(filepath.Join(dir, "keepsake.db"))
	if err != nil {
		t.Fatalf("NewSQLiteBackend failed: %v", err)
	}
	t.Cleanup(func() { _ = sb.Close() })
	return map[string]Backend{"file": fb, "sqlite": sb}
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := Open[record](ctx, b, KeyDateSuggestions, nil)
			if c.Len() != 0 {
				t.Fatalf("new collection has %d items", c.Len())
			}
			err := c.Mutate(ctx, func(items []record) []record {
				return append(items, record{ID: "a"}, record{ID: "b", Seen: true})
			})
			if err != nil {
				t.Fatalf("Mutate failed: %v", err)
			}

			reopened := Open[record](ctx, b, KeyDateSuggestions, nil)
			got := reopened.Items()
			if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" || !got[1].Seen {
				t.Errorf("reopened items = %+v", got)
			}
		})
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := Open[string](ctx, b, KeyGalleryImages, nil)
			if err := c.Mutate(ctx, func(items []string) []string { return append(items, "x", "y") }); err != nil {
				t.Fatalf("Mutate failed: %v", err)
			}
			before, _, err := b.Get(ctx, KeyGalleryImages)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}

			loaded := Open[string](ctx, b, KeyGalleryImages, nil)
			if err := loaded.Save(ctx); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			after, _, err := b.Get(ctx, KeyGalleryImages)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(before) != string(after) {
				t.Errorf("save(load()) changed payload: %s -> %s", before, after)
			}
		})
	}
}

func TestCorruptPayloadLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	logger, err := log.NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := b.Put(ctx, KeyDateSuggestions, []byte(`{"not": "a list"`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			c := Open[record](ctx, b, KeyDateSuggestions, logger)
			if c.Len() != 0 {
				t.Errorf("corrupt payload loaded %d items, want 0", c.Len())
			}

			// The collection stays usable and overwrites the corrupt payload.
			if err := c.Mutate(ctx, func(items []record) []record { return append(items, record{ID: "z"}) }); err != nil {
				t.Fatalf("Mutate after corruption failed: %v", err)
			}
			if got := Open[record](ctx, b, KeyDateSuggestions, nil).Len(); got != 1 {
				t.Errorf("reopened Len = %d, want 1", got)
			}
		})
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.Event != log.EventStoreCorrupt || e.Key != KeyDateSuggestions {
			t.Errorf("unexpected event %+v", e)
		}
	}
}

func TestIncompatiblePayloadLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	b, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	// Valid JSON, wrong element type.
	if err := b.Put(ctx, KeyGalleryImages, []byte(`[1, 2, 3]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got := Open[string](ctx, b, KeyGalleryImages, nil).Len(); got != 0 {
		t.Errorf("incompatible payload loaded %d items, want 0", got)
	}
}

func TestMutateFailureLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	inner, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	b := &failingBackend{Backend: inner}
	c := Open[string](ctx, b, KeyGalleryImages, nil)
	if err := c.Mutate(ctx, func(items []string) []string { return append(items, "kept") }); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}

	b.fail = true
	err = c.Mutate(ctx, func(items []string) []string { return append(items, "lost") })
	if err == nil {
		t.Fatal("Mutate should report the write failure")
	}
	if got := c.Items(); len(got) != 1 || got[0] != "kept" {
		t.Errorf("items after failed Mutate = %v, want [kept]", got)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	b, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	c := Open[string](ctx, b, KeyGalleryImages, nil)
	if err := c.Mutate(ctx, func(items []string) []string { return append(items, "a") }); err != nil {
		t.Fatalf("Mutate failed: %v", err)
	}
	items := c.Items()
	items[0] = "changed"
	if c.Items()[0] != "a" {
		t.Error("Items should return a copy")
	}
}

func TestFileBackendRejectsBadKeys(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	for _, key := range []string{"", "../escape", ".hidden", `a\b`} {
		if err := b.Put(context.Background(), key, []byte("[]")); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
	}
}

func TestFileBackendLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	b, err := NewFileBackend(dir)
	if err != nil {
		t.Fatalf("NewFileBackend failed: %v", err)
	}
	if err := b.Put(context.Background(), KeyGalleryImages, []byte("[]")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != KeyGalleryImages+".json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v", names)
	}
}

func TestOpenBackendFromConfig(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.BackendFile

	b, err := OpenBackend(cfg, root, nil)
	if err != nil {
		t.Fatalf("OpenBackend failed: %v", err)
	}
	defer b.Close()
	if _, ok := b.(*FileBackend); !ok {
		t.Errorf("OpenBackend returned %T, want *FileBackend", b)
	}
	if _, err := os.Stat(filepath.Join(root, ".keepsake", "data")); err != nil {
		t.Errorf("file backend directory not created: %v", err)
	}

	cfg.Storage.Backend = "bogus"
	if _, err := OpenBackend(cfg, root, nil); err == nil {
		t.Error("OpenBackend should reject an unknown backend")
	}
}

func TestOpenBackendReplacesCorruptDatabase(t *testing.T) {
	root := t.TempDir()
	logger, err := log.NewLogger(root)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	cfg := config.DefaultConfig()
	dbPath := cfg.StoragePath(root)
	if err := os.WriteFile(dbPath, []byte("this is not a sqlite database, just some bytes that fill a header"), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := OpenBackend(cfg, root, logger)
	if err != nil {
		t.Fatalf("OpenBackend failed: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	c := Open[record](ctx, b, KeyDateSuggestions, logger)
	if c.Len() != 0 {
		t.Errorf("collection has %d items, want 0", c.Len())
	}
	if err := c.Mutate(ctx, func(items []record) []record { return append(items, record{ID: "a"}) }); err != nil {
		t.Fatalf("Mutate on recreated database failed: %v", err)
	}

	matches, err := filepath.Glob(dbPath + ".corrupt-*")
	if err != nil || len(matches) != 1 {
		t.Fatalf("moved-aside files = %v (err %v), want 1", matches, err)
	}

	events, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 1 || events[0].Event != log.EventStoreCorrupt {
		t.Fatalf("events = %+v, want one store_corrupt", events)
	}
	if got := events[0].Data["moved_to"]; got != matches[0] {
		t.Errorf("moved_to = %v, want %s", got, matches[0])
	}
}
