package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Gate.UnlockDelayMS = 1200
	cfg.Storage.Backend = BackendFile
	cfg.Content.Path = "content.yaml"

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Gate.UnlockDelayMS != 1200 {
		t.Errorf("UnlockDelayMS: got %d, want 1200", loaded.Gate.UnlockDelayMS)
	}
	if loaded.Storage.Backend != BackendFile {
		t.Errorf("Storage.Backend: got %q, want %q", loaded.Storage.Backend, BackendFile)
	}
	if loaded.Gate.YearHint != cfg.Gate.YearHint {
		t.Errorf("YearHint: got %q, want %q", loaded.Gate.YearHint, cfg.Gate.YearHint)
	}
	if loaded.Content.Path != "content.yaml" {
		t.Errorf("Content.Path: got %q, want %q", loaded.Content.Path, "content.yaml")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Gate.Year != "2022" {
		t.Errorf("default Year: got %q, want 2022", cfg.Gate.Year)
	}
	if cfg.UnlockDelay() != 3500*time.Millisecond {
		t.Errorf("default UnlockDelay: got %v, want 3.5s", cfg.UnlockDelay())
	}
	if cfg.Codec.MaxWidth != 800 || cfg.Codec.Quality != 70 {
		t.Errorf("default codec: got %+v", cfg.Codec)
	}
}

func TestLoadMissingConfigUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Storage.Backend: got %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".keepsake"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".keepsake", "config.yaml"), []byte("gate: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(tmpDir); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}

func TestPartialConfigFillsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	partial := `version: 1
gate:
  elevated_city: paris
`
	if err := os.MkdirAll(filepath.Join(tmpDir, ".keepsake"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".keepsake", "config.yaml"), []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gate.ElevatedCity != "paris" {
		t.Errorf("ElevatedCity: got %q, want paris", cfg.Gate.ElevatedCity)
	}
	if cfg.Gate.Year != "2022" {
		t.Errorf("Year should default, got %q", cfg.Gate.Year)
	}
	if cfg.Gate.UnlockDelayMS != 3500 {
		t.Errorf("UnlockDelayMS should default, got %d", cfg.Gate.UnlockDelayMS)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("KEEPSAKE_STORAGE_BACKEND", BackendFile)
	t.Setenv("KEEPSAKE_GATE_UNLOCK_DELAY_MS", "10")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Storage.Backend: got %q, want %q", cfg.Storage.Backend, BackendFile)
	}
	if cfg.UnlockDelay() != 10*time.Millisecond {
		t.Errorf("UnlockDelay: got %v, want 10ms", cfg.UnlockDelay())
	}
}

func TestEnvOverrideInvalidInt(t *testing.T) {
	t.Setenv("KEEPSAKE_CODEC_QUALITY", "high")
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load should fail on a non-numeric KEEPSAKE_CODEC_QUALITY")
	}
}

func TestDotEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("KEEPSAKE_GATE_YEAR=2019\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("KEEPSAKE_GATE_YEAR") })

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gate.Year != "2019" {
		t.Errorf("Year: got %q, want 2019", cfg.Gate.Year)
	}
}

func TestUnknownBackendRejected(t *testing.T) {
	t.Setenv("KEEPSAKE_STORAGE_BACKEND", "redis")
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load should reject an unknown backend")
	}
}

func TestStoragePathDefaultsPerBackend(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.StoragePath("/p"), filepath.Join("/p", ".keepsake", "keepsake.db"); got != want {
		t.Errorf("sqlite StoragePath: got %q, want %q", got, want)
	}
	cfg.Storage.Backend = BackendFile
	if got, want := cfg.StoragePath("/p"), filepath.Join("/p", ".keepsake", "data"); got != want {
		t.Errorf("file StoragePath: got %q, want %q", got, want)
	}
	cfg.Storage.Path = "/abs/store"
	if got := cfg.StoragePath("/p"); got != "/abs/store" {
		t.Errorf("absolute StoragePath: got %q", got)
	}
}

func TestContentPath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ContentPath("/proj"); got != "" {
		t.Errorf("empty content path = %q, want empty", got)
	}
	cfg.Content.Path = "story.yaml"
	if got, want := cfg.ContentPath("/proj"), filepath.Join("/proj", "story.yaml"); got != want {
		t.Errorf("relative content path = %q, want %q", got, want)
	}
	cfg.Content.Path = "/etc/story.yaml"
	if got := cfg.ContentPath("/proj"); got != "/etc/story.yaml" {
		t.Errorf("absolute content path = %q", got)
	}
}
