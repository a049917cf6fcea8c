package workspace

import (
	"context"
	"testing"

	"github.com/keepsake-app/keepsake/internal/config"
	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/testutil"
)

func openTemp(t *testing.T, backend string) *Workspace {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = backend
	ws, err := OpenWithConfig(context.Background(), root, cfg)
	if err != nil {
		t.Fatalf("OpenWithConfig failed: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func TestOpenDefaultsToEmptyCollections(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		ws := openTemp(t, backend)
		if ws.Gallery.Len() != 0 || ws.Wishlist.Len() != 0 {
			t.Errorf("%s: fresh workspace has %d images, %d dates", backend, ws.Gallery.Len(), ws.Wishlist.Len())
		}
		if len(ws.Content.Messages()) == 0 {
			t.Errorf("%s: embedded message pool is empty", backend)
		}
	}
}

func TestReopenSeesPersistedDates(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	ws, err := Open(ctx, root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := ws.Wishlist.Add(ctx, "Picnic", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	ws.Close()

	ws, err = Open(ctx, root)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer ws.Close()
	dates := ws.Wishlist.Dates()
	if len(dates) != 1 || dates[0].Name != "Picnic" {
		t.Errorf("reopened dates = %+v, want one Picnic", dates)
	}
}

func TestOpenReadsContentOverride(t *testing.T) {
	root := testutil.TempProject(t, map[string]string{
		".keepsake/config.yaml": "storage:\n  backend: file\ncontent:\n  path: story.yaml\n",
		"story.yaml":            "timeline:\n  - title: One\n    text: first\nmessages:\n  - hello\n",
	})
	ws, err := Open(context.Background(), root)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ws.Close()
	if msgs := ws.Content.Messages(); len(msgs) != 1 || msgs[0] != "hello" {
		t.Errorf("messages = %v, want [hello]", msgs)
	}
}

func TestUnlock(t *testing.T) {
	ws := openTemp(t, config.BackendFile)

	tests := []struct {
		year, city string
		role       gate.Role
		wantErr    bool
	}{
		{"2022", "Madurai", gate.RoleElevated, false},
		{"2022", "grenoble", gate.RoleStandard, false},
		{"2021", "madurai", gate.RoleNone, true},
		{"2022", "paris", gate.RoleNone, true},
	}
	for _, tt := range tests {
		role, err := ws.Unlock(tt.year, tt.city)
		if (err != nil) != tt.wantErr || role != tt.role {
			t.Errorf("Unlock(%q, %q) = %v, %v; want %v, err %v", tt.year, tt.city, role, err, tt.role, tt.wantErr)
		}
	}
}

func TestOpenSurvivesCorruptDatabase(t *testing.T) {
	root := testutil.TempProject(t, map[string]string{
		".keepsake/keepsake.db": "garbage that is certainly not a SQLite file header",
	})

	ws, err := Open(context.Background(), root)
	if err != nil {
		t.Fatalf("Open with a corrupt database failed: %v", err)
	}
	defer ws.Close()
	if ws.Gallery.Len() != 0 || ws.Wishlist.Len() != 0 {
		t.Errorf("corrupt database loaded %d images, %d dates; want empty", ws.Gallery.Len(), ws.Wishlist.Len())
	}
	if _, err := ws.Wishlist.Add(context.Background(), "Picnic", ""); err != nil {
		t.Errorf("Add after recovery failed: %v", err)
	}
}
