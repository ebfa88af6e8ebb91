package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/pathmark/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	// Unset rather than empty: godotenv never overrides a variable that exists.
	for _, k := range []string{config.EnvDatabase, config.EnvBackend, config.EnvEditor} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return home
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	home := isolate(t)

	cfg, err := config.Load()
	assert.NilError(t, err)

	path := filepath.Join(home, ".config", "pathmark", "config.toml")
	_, err = os.Stat(path)
	assert.NilError(t, err, "expected default config to be written")

	assert.Check(t, is.Equal(cfg.Backend, config.BackendSQLite))
	assert.Check(t, is.Equal(cfg.Database, filepath.Join(home, ".local", "share", "pathmark", "pathmark.db")))
	assert.Check(t, is.Equal(cfg.RefreshInterval(), 250*time.Millisecond))
	assert.Check(t, is.Equal(cfg.NameWidth, 20))
	assert.Check(t, !cfg.ShowHidden)
}

func TestLoadFrom_ReadsFileAndExpandsHome(t *testing.T) {
	home := isolate(t)
	dir := t.TempDir()

	contents := `backend = "json"
database = "~/marks.json"
show_hidden = true
name_width = 12
`
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0644))

	cfg, err := config.LoadFrom(dir)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(cfg.Backend, config.BackendJSON))
	assert.Check(t, is.Equal(cfg.Database, filepath.Join(home, "marks.json")))
	assert.Check(t, cfg.ShowHidden)
	assert.Check(t, is.Equal(cfg.NameWidth, 12))
	// Unset keys keep their defaults.
	assert.Check(t, is.Equal(cfg.RefreshIntervalMS, 250))
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	assert.NilError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("backend = \"sqlite\"\n"), 0644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PATHMARK_EDITOR=nvim\n"), 0644))
	t.Setenv(config.EnvBackend, "JSON")
	t.Setenv(config.EnvDatabase, "/tmp/other.json")

	cfg, err := config.LoadFrom(dir)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(cfg.Backend, config.BackendJSON))
	assert.Check(t, is.Equal(cfg.Database, "/tmp/other.json"))
	assert.Check(t, is.Equal(cfg.EditorCommand(), "nvim"))
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	assert.NilError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("backend = \n"), 0644))

	_, err := config.LoadFrom(dir)
	assert.ErrorContains(t, err, "could not parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"unknown backend", func(c *config.Config) { c.Backend = "redis" }, "unknown backend"},
		{"zero interval", func(c *config.Config) { c.RefreshIntervalMS = 0 }, "refresh_interval_ms"},
		{"negative width", func(c *config.Config) { c.NameWidth = -1 }, "name_width"},
		{"empty database", func(c *config.Config) { c.Database = "" }, "database path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NilError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEditorCommand_Fallbacks(t *testing.T) {
	isolate(t)

	t.Setenv("EDITOR", "")
	assert.Check(t, is.Equal(config.Config{}.EditorCommand(), "vi"))

	t.Setenv("EDITOR", "hx")
	assert.Check(t, is.Equal(config.Config{}.EditorCommand(), "hx"))
	assert.Check(t, is.Equal(config.Config{Editor: "code -w"}.EditorCommand(), "code -w"))
}
