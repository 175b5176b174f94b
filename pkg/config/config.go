// Package config loads moodlog settings from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/timeutil"
)

// Supported storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverDiskv  = "diskv"
	DriverMemory = "memory"
)

const (
	defaultPath   = "~/.mood"
	defaultDriver = DriverSQLite
)

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the resolved configuration for one invocation.
type Config struct {
	Path      string         `mapstructure:"path"`
	Store     string         `mapstructure:"driver"`
	WeekStart string         `mapstructure:"week_start"`
	Locale    string         `mapstructure:"locale"`
	Log       LogConfig      `mapstructure:"log"`
	Moods     []palette.Mood `mapstructure:"moods"`
	File      string         `mapstructure:"-"`
}

// BasePath is the expanded storage location.
func (c *Config) BasePath() string {
	return c.Path
}

// Driver names the storage backend.
func (c *Config) Driver() string {
	return c.Store
}

// Palette returns the configured moods, or the defaults.
func (c *Config) Palette() (palette.Palette, error) {
	return palette.New(c.Moods)
}

// Language resolves the locale used for week arithmetic.
func (c *Config) Language() language.Tag {
	if c.Locale == "" {
		return timeutil.LocaleFromEnv()
	}
	tag, err := timeutil.ParseLocale(c.Locale)
	if err != nil {
		return timeutil.LocaleFromEnv()
	}
	return tag
}

// FirstWeekday honours week_start when set, else the locale.
func (c *Config) FirstWeekday() (time.Weekday, error) {
	if strings.TrimSpace(c.WeekStart) != "" {
		return timeutil.ParseWeekday(c.WeekStart)
	}
	return timeutil.FirstWeekday(c.Language()), nil
}

// Load reads `.mood` (yaml, toml or json) from $MOOD_CONFIG_PATH, the working
// directory or $HOME, then applies MOOD_* environment overrides.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("path", defaultPath)
	v.SetDefault("driver", defaultDriver)
	v.SetDefault("week_start", "")
	v.SetDefault("locale", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetConfigName(".mood")
	v.SetEnvPrefix("MOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("MOOD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Path:      v.GetString("path"),
		Store:     strings.ToLower(strings.TrimSpace(v.GetString("driver"))),
		WeekStart: v.GetString("week_start"),
		Locale:    v.GetString("locale"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		File: v.ConfigFileUsed(),
	}
	if err := v.UnmarshalKey("moods", &cfg.Moods); err != nil {
		return nil, fmt.Errorf("config: moods: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	switch c.Store {
	case "":
		c.Store = defaultDriver
	case DriverSQLite, DriverDiskv, DriverMemory:
	default:
		return fmt.Errorf("config: unknown driver %q", c.Store)
	}
	if _, err := c.FirstWeekday(); err != nil {
		return fmt.Errorf("config: week_start: %w", err)
	}
	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Store == DriverMemory {
		return nil
	}
	expanded, err := homedir.Expand(c.Path)
	if err != nil {
		return fmt.Errorf("config: expand path: %w", err)
	}
	c.Path = filepath.Clean(expanded)
	return nil
}
