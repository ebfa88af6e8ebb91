package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const defaultConfigTmpl = `# pathmark configuration file.

# Storage backend: "sqlite" or "json".
backend = "sqlite"

# Where bookmarks are stored.
database = %q

# Command used to open bookmarked files. Empty falls back to $EDITOR, then vi.
editor = ""

# Show dotfiles in the preview pane.
show_hidden = false

# How often the browser re-reads the store, in milliseconds.
refresh_interval_ms = 250

# Width of the name column in the bookmark list.
name_width = 20
`

// Backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Environment overrides, applied after the config file and .env.
const (
	EnvDatabase = "PATHMARK_DATABASE"
	EnvBackend  = "PATHMARK_BACKEND"
	EnvEditor   = "PATHMARK_EDITOR"
)

// Config holds application configuration.
type Config struct {
	Backend           string `toml:"backend"`
	Database          string `toml:"database"`
	Editor            string `toml:"editor"`
	ShowHidden        bool   `toml:"show_hidden"`
	RefreshIntervalMS int    `toml:"refresh_interval_ms"`
	NameWidth         int    `toml:"name_width"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Backend:           BackendSQLite,
		Database:          DefaultDatabasePath(),
		RefreshIntervalMS: 250,
		NameWidth:         20,
	}
}

// RefreshInterval returns the store polling interval.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// EditorCommand returns the configured editor, then $EDITOR, then vi.
func (c Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("unknown backend %q (expected %q or %q)", c.Backend, BackendSQLite, BackendJSON)
	}
	if c.Database == "" {
		return errors.New("database path is empty")
	}
	if c.RefreshIntervalMS <= 0 {
		return fmt.Errorf("refresh_interval_ms must be positive, got %d", c.RefreshIntervalMS)
	}
	if c.NameWidth <= 0 {
		return fmt.Errorf("name_width must be positive, got %d", c.NameWidth)
	}
	return nil
}

// Dir returns the pathmark configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pathmark"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pathmark"), nil
}

// DataDir returns the directory holding the database and debug log.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pathmark")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "pathmark")
}

// DefaultDatabasePath returns ~/.local/share/pathmark/pathmark.db.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), "pathmark.db")
}

// Load reads the config from the pathmark config directory, creating a
// default config file if one doesn't exist.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.toml and the optional .env from dir.
func LoadFrom(dir string) (Config, error) {
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Config{}, fmt.Errorf("could not create config directory: %w", err)
		}
		contents := fmt.Sprintf(defaultConfigTmpl, DefaultDatabasePath())
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			return Config{}, fmt.Errorf("could not write default config: %w", err)
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse %s: %w", path, err)
	}

	// The .env file is optional; a missing one is not an error.
	envPath := filepath.Join(dir, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load %s: %w", envPath, err)
	}
	cfg.applyEnv()

	db, err := expandHome(cfg.Database)
	if err != nil {
		return Config{}, err
	}
	cfg.Database = db

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(EnvEditor); v != "" {
		c.Editor = v
	}
}

func expandHome(p string) (string, error) {
	if len(p) >= 2 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
		return filepath.Join(home, p[2:]), nil
	}
	return p, nil
}
