// Package config handles reading and writing .keepsake/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .keepsake/config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Gate    GateConfig    `yaml:"gate"`
	Codec   CodecConfig   `yaml:"codec"`
	Storage StorageConfig `yaml:"storage"`
	Content ContentConfig `yaml:"content"`
}

// GateConfig holds the two gate answers and their rejection hints.
// Answers may be plaintext or bcrypt hashes of the normalized answer.
type GateConfig struct {
	Year          string `yaml:"year"`
	StandardCity  string `yaml:"standard_city"`
	ElevatedCity  string `yaml:"elevated_city"`
	YearHint      string `yaml:"year_hint"`
	CityHint      string `yaml:"city_hint"`
	UnlockDelayMS int    `yaml:"unlock_delay_ms"`
}

// CodecConfig controls image compression.
type CodecConfig struct {
	MaxWidth int `yaml:"max_width"`
	Quality  int `yaml:"quality"` // 1-100
}

// StorageConfig selects the durable backend for collections.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "sqlite" | "file"
	Path    string `yaml:"path"`    // relative to the project root
}

// ContentConfig points at an optional static content override.
type ContentConfig struct {
	Path string `yaml:"path"` // empty = embedded content
}

// Storage backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

const configDir = ".keepsake"
const configFile = "config.yaml"

// Dir returns the .keepsake state directory for a project root.
func Dir(root string) string {
	return filepath.Join(root, configDir)
}

// ReadConfig reads .keepsake/config.yaml from the given project directory.
// dir is the project root (not .keepsake/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .keepsake/config.yaml in the given project directory.
// Creates the .keepsake/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Gate: GateConfig{
			Year:          "2022",
			StandardCity:  "grenoble",
			ElevatedCity:  "madurai",
			YearHint:      "Hmm… try again. Think about when everything changed 🌸",
			CityHint:      "Not quite… think about the city where destiny worked overtime 🚲",
			UnlockDelayMS: 3500,
		},
		Codec: CodecConfig{
			MaxWidth: 800,
			Quality:  70,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
	}
}

// Load reads the project config, falling back to defaults when the file is
// missing, then layers .env and KEEPSAKE_* environment overrides on top.
// A malformed config file is still an error.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}

	if err := LoadEnv(dir); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads <dir>/.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values from KEEPSAKE_* environment variables.
func ApplyEnv(cfg *Config) error {
	strs := map[string]*string{
		"KEEPSAKE_GATE_YEAR":          &cfg.Gate.Year,
		"KEEPSAKE_GATE_STANDARD_CITY": &cfg.Gate.StandardCity,
		"KEEPSAKE_GATE_ELEVATED_CITY": &cfg.Gate.ElevatedCity,
		"KEEPSAKE_STORAGE_BACKEND":    &cfg.Storage.Backend,
		"KEEPSAKE_STORAGE_PATH":       &cfg.Storage.Path,
		"KEEPSAKE_CONTENT_PATH":       &cfg.Content.Path,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"KEEPSAKE_GATE_UNLOCK_DELAY_MS": &cfg.Gate.UnlockDelayMS,
		"KEEPSAKE_CODEC_MAX_WIDTH":      &cfg.Codec.MaxWidth,
		"KEEPSAKE_CODEC_QUALITY":        &cfg.Codec.Quality,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Gate.StandardCity == c.Gate.ElevatedCity {
		return fmt.Errorf("gate cities must differ")
	}
	return nil
}

// UnlockDelay returns the gate grace period as a duration.
func (c *Config) UnlockDelay() time.Duration {
	return time.Duration(c.Gate.UnlockDelayMS) * time.Millisecond
}

// StoragePath resolves the storage path against the project root.
// An empty path selects .keepsake/keepsake.db for sqlite and
// .keepsake/data/ for the file backend.
func (c *Config) StoragePath(root string) string {
	path := c.Storage.Path
	if path == "" {
		if c.Storage.Backend == BackendFile {
			path = filepath.Join(configDir, "data")
		} else {
			path = filepath.Join(configDir, "keepsake.db")
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// ContentPath resolves the content override against the project root.
// An empty result selects the embedded content.
func (c *Config) ContentPath(root string) string {
	if c.Content.Path == "" || filepath.IsAbs(c.Content.Path) {
		return c.Content.Path
	}
	return filepath.Join(root, c.Content.Path)
}

// fillDefaults fills zero values left by older or partial config files.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Gate.Year == "" {
		c.Gate.Year = def.Gate.Year
	}
	if c.Gate.StandardCity == "" {
		c.Gate.StandardCity = def.Gate.StandardCity
	}
	if c.Gate.ElevatedCity == "" {
		c.Gate.ElevatedCity = def.Gate.ElevatedCity
	}
	if c.Gate.YearHint == "" {
		c.Gate.YearHint = def.Gate.YearHint
	}
	if c.Gate.CityHint == "" {
		c.Gate.CityHint = def.Gate.CityHint
	}
	if c.Gate.UnlockDelayMS <= 0 {
		c.Gate.UnlockDelayMS = def.Gate.UnlockDelayMS
	}
	if c.Codec.MaxWidth <= 0 {
		c.Codec.MaxWidth = def.Codec.MaxWidth
	}
	if c.Codec.Quality <= 0 || c.Codec.Quality > 100 {
		c.Codec.Quality = def.Codec.Quality
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
}
