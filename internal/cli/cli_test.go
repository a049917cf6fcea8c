package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keepsake-app/keepsake/internal/config"
	"github.com/keepsake-app/keepsake/internal/testutil"
)

// run executes the root command against dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	// Flag variables are package globals and survive between executions.
	verbose, jsonOutput = false, false
	galleryYear, galleryCity = "", ""
	datesYear, datesCity, datesLocation = "", "", ""
	initForce, initHash = false, false
	initBackend, initYear, initCity, initKeeper = config.BackendSQLite, "", "", ""
	hashCity = false
	statusEvents = 5

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--dir=" + dir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("keepsake %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestInitWritesConfig(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "init", "--backend", "file", "--answer-year", "2019")
	if !strings.Contains(out, "Wrote") {
		t.Errorf("output = %q", out)
	}

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != config.BackendFile {
		t.Errorf("backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Gate.Year != "2019" {
		t.Errorf("year = %q, want 2019", cfg.Gate.Year)
	}

	if _, err := run(t, dir, "init"); err == nil {
		t.Error("second init without --force succeeded")
	}
	mustRun(t, dir, "init", "--force")
}

func TestInitHashStillUnlocks(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init", "--hash", "--backend", "file")

	cfg, err := config.ReadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(cfg.Gate.ElevatedCity, "$2") {
		t.Fatalf("elevated answer not hashed: %q", cfg.Gate.ElevatedCity)
	}

	mustRun(t, dir, "dates", "add", "Picnic")
	id := firstDateID(t, dir)
	mustRun(t, dir, "dates", "rm", id, "--year", "2022", "--city", "MADURAI")
	if out := mustRun(t, dir, "dates", "list"); !strings.Contains(out, "Nothing planned") {
		t.Errorf("list after rm = %q", out)
	}
}

func TestHashCommand(t *testing.T) {
	out := mustRun(t, t.TempDir(), "hash", "--city", "Grenoble")
	if !strings.HasPrefix(strings.TrimSpace(out), "$2") {
		t.Errorf("hash output = %q", out)
	}
}

func TestGalleryAddListExport(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteImage(t, dir, "wide.png", testutil.PNG(t, 1600, 400))
	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, dir, "gallery", "add", good, bad)
	if !strings.Contains(out, "Added 1 image(s)") {
		t.Errorf("add output = %q", out)
	}

	out = mustRun(t, dir, "gallery", "list")
	if !strings.Contains(out, "image/jpeg") {
		t.Errorf("list output = %q", out)
	}

	out = mustRun(t, dir, "gallery", "list", "--json")
	var entries []galleryEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("parsing JSON list: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Index != 1 || entries[0].Bytes == 0 {
		t.Errorf("entries = %+v", entries)
	}

	dst := filepath.Join(dir, "out.jpg")
	mustRun(t, dir, "gallery", "export", "1", dst)
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := testutil.DecodedSize(t, data); w != 800 || h != 200 {
		t.Errorf("exported size = %dx%d, want 800x200", w, h)
	}
}

func TestGalleryAddAllFailing(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "gallery", "add", filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("expected an error when nothing could be added")
	}
}

func TestGalleryRmNeedsKeeper(t *testing.T) {
	dir := t.TempDir()
	img := testutil.WriteImage(t, dir, "a.jpg", testutil.JPEG(t, 40, 40))
	mustRun(t, dir, "gallery", "add", img, img)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no answers", []string{"gallery", "rm", "1"}, "gate answers"},
		{"wrong year", []string{"gallery", "rm", "1", "--year", "2020", "--city", "madurai"}, "gate answers"},
		{"standard", []string{"gallery", "rm", "1", "--year", "2022", "--city", "grenoble"}, "keeper"},
		{"out of range", []string{"gallery", "rm", "9", "--year", "2022", "--city", "madurai"}, "no image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, dir, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	out := mustRun(t, dir, "gallery", "rm", "1", "--year", "2022", "--city", " Madurai ")
	if !strings.Contains(out, "1 left") {
		t.Errorf("rm output = %q", out)
	}
}

func TestDatesCommands(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "dates", "add", "Sunset", "picnic")
	mustRun(t, dir, "dates", "add", "Museum", "--location", "Lyon")

	out := mustRun(t, dir, "dates", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("list has %d lines, want header + 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Museum") || !strings.Contains(lines[2], "Sunset picnic") {
		t.Errorf("list not newest first:\n%s", out)
	}
	if !strings.Contains(lines[2], "Location TBD") {
		t.Errorf("missing default location:\n%s", out)
	}

	id := firstDateID(t, dir)
	out = mustRun(t, dir, "dates", "toggle", id[:6])
	if !strings.Contains(out, "Museum is now visited") {
		t.Errorf("toggle output = %q", out)
	}
	out = mustRun(t, dir, "dates", "toggle", id)
	if !strings.Contains(out, "not visited yet") {
		t.Errorf("second toggle output = %q", out)
	}

	if _, err := run(t, dir, "dates", "rm", id, "--year", "2022", "--city", "grenoble"); err == nil {
		t.Error("standard role deleted a suggestion")
	}
	if _, err := run(t, dir, "dates", "toggle", "zzz"); err == nil {
		t.Error("unknown id accepted")
	}
	if _, err := run(t, dir, "dates", "add", "   "); err == nil {
		t.Error("blank name accepted")
	}
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "dates", "add", "Picnic")

	out := mustRun(t, dir, "status")
	for _, want := range []string{"Gallery:  0 image(s)", "Wishlist: 1 place(s), 0 visited", "date_added", "name=Picnic"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
}

func firstDateID(t *testing.T, dir string) string {
	t.Helper()
	out := mustRun(t, dir, "dates", "list", "--json")
	var dates []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &dates); err != nil {
		t.Fatalf("parsing dates: %v\n%s", err, out)
	}
	if len(dates) == 0 {
		t.Fatal("no dates listed")
	}
	return dates[0].ID
}
