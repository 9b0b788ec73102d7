package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CMDPALETTE_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".cmdpalette", "settings.db"), cfg.Database.Path)
	assert.Empty(t, cfg.Catalog.Path)
	assert.Equal(t, "list", cfg.Palette.ShortcutFormat)
	assert.Equal(t, runtime.GOOS, cfg.Palette.Platform)
	assert.Equal(t, 10, cfg.Palette.MaxRecent)
	assert.Empty(t, cfg.Log.File)
}

func TestLoadFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[catalog]
path = "/etc/actions.toml"

[palette]
shortcut_format = "platform"
platform = "darwin"
max_recent = 5
`), 0o644))
	t.Setenv("CMDPALETTE_CONFIG", path)
	t.Setenv("CMDPALETTE_PALETTE_MAX_RECENT", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/etc/actions.toml", cfg.Catalog.Path)
	assert.Equal(t, "platform", cfg.Palette.ShortcutFormat)
	assert.Equal(t, "darwin", cfg.Palette.Platform)
	assert.Equal(t, 7, cfg.Palette.MaxRecent)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CMDPALETTE_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Database: DatabaseConfig{Path: "settings.db"},
		Palette:  PaletteConfig{ShortcutFormat: "list", MaxRecent: 10},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Palette.ShortcutFormat = "fancy"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Palette.MaxRecent = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Database.Path = ""
	assert.Error(t, bad.Validate())
}
