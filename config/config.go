// Package config loads cmdpalette settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Palette  PaletteConfig  `mapstructure:"palette"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CatalogConfig points at the action catalog. An empty path selects the
// built-in catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type PaletteConfig struct {
	ShortcutFormat string `mapstructure:"shortcut_format"`
	Platform       string `mapstructure:"platform"`
	MaxRecent      int    `mapstructure:"max_recent"`
}

// LogConfig selects where logs go. An empty file discards them.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// Load reads configuration from file and env. Env var overrides use prefix CMDPALETTE_.
func Load() (Config, error) {
	return LoadFile(os.Getenv("CMDPALETTE_CONFIG"))
}

// LoadFile is Load with an explicit config file. An empty path searches
// ~/.config/cmdpalette for config.toml and tolerates its absence.
func LoadFile(cfgPath string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}

	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(home, ".cmdpalette", "settings.db"))
	v.SetDefault("catalog.path", "")
	v.SetDefault("palette.shortcut_format", "list")
	v.SetDefault("palette.platform", runtime.GOOS)
	v.SetDefault("palette.max_recent", 10)
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "cmdpalette"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CMDPALETTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the palette cannot use.
func (c Config) Validate() error {
	switch c.Palette.ShortcutFormat {
	case "list", "platform":
	default:
		return fmt.Errorf("palette.shortcut_format: unknown format %q", c.Palette.ShortcutFormat)
	}
	if c.Palette.MaxRecent <= 0 {
		return fmt.Errorf("palette.max_recent: must be positive, got %d", c.Palette.MaxRecent)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path: must not be empty")
	}
	return nil
}
