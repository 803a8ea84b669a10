package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata" // --tz works without system zoneinfo

	"gopkg.in/yaml.v3"

	"github.com/fragmede/hnpeek/internal/api"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	CacheDir       string
	DBPath         string
	LogPath        string
	Feed           api.Feed
	StoryCount     int
	StoryListTTL   time.Duration
	ItemTTL        time.Duration
	RequestTimeout time.Duration
	CacheEnabled   bool
	LogLevel       string
	TimeZone       string
	BaseURL        string
}

func Default() Config {
	cacheDir := filepath.Join(userConfigDir(), "hnpeek")
	return Config{
		CacheDir:       cacheDir,
		DBPath:         filepath.Join(cacheDir, "cache.db"),
		LogPath:        filepath.Join(cacheDir, "debug.log"),
		Feed:           api.FeedTop,
		StoryCount:     10,
		StoryListTTL:   60 * time.Second,
		ItemTTL:        5 * time.Minute,
		RequestTimeout: 10 * time.Second,
		CacheEnabled:   true,
		LogLevel:       "info",
		TimeZone:       "UTC",
		BaseURL:        api.BaseURL,
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	return filepath.Join(userConfigDir(), "hnpeek", "config.yaml")
}

// fileConfig is the YAML shape. Absent keys keep their defaults.
type fileConfig struct {
	CacheDir       *string        `yaml:"cache_dir"`
	Feed           *string        `yaml:"feed"`
	StoryCount     *int           `yaml:"story_count"`
	StoryListTTL   *time.Duration `yaml:"story_list_ttl"`
	ItemTTL        *time.Duration `yaml:"item_ttl"`
	RequestTimeout *time.Duration `yaml:"request_timeout"`
	Cache          *bool          `yaml:"cache"`
	LogLevel       *string        `yaml:"log_level"`
	TimeZone       *string        `yaml:"timezone"`
	BaseURL        *string        `yaml:"base_url"`
}

// Load returns Default overlaid with the YAML file at path. An empty path
// means DefaultPath, which is allowed to be missing; an explicit path is not.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	fc.apply(&cfg)
	return cfg, nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.CacheDir != nil {
		cfg.SetCacheDir(*fc.CacheDir)
	}
	if fc.Feed != nil {
		cfg.Feed = api.Feed(*fc.Feed)
	}
	if fc.StoryCount != nil {
		cfg.StoryCount = *fc.StoryCount
	}
	if fc.StoryListTTL != nil {
		cfg.StoryListTTL = *fc.StoryListTTL
	}
	if fc.ItemTTL != nil {
		cfg.ItemTTL = *fc.ItemTTL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = *fc.RequestTimeout
	}
	if fc.Cache != nil {
		cfg.CacheEnabled = *fc.Cache
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.TimeZone != nil {
		cfg.TimeZone = *fc.TimeZone
	}
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
}

// SetCacheDir moves the cache directory and the files kept in it.
func (c *Config) SetCacheDir(dir string) {
	c.CacheDir = dir
	c.DBPath = filepath.Join(dir, "cache.db")
	c.LogPath = filepath.Join(dir, "debug.log")
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case !c.Feed.Valid():
		return fmt.Errorf("%w: unknown feed %q", ErrInvalidConfig, c.Feed)
	case c.StoryCount < 1:
		return fmt.Errorf("%w: story count must be at least 1, got %d", ErrInvalidConfig, c.StoryCount)
	case c.StoryListTTL < 0 || c.ItemTTL < 0:
		return fmt.Errorf("%w: cache TTLs must not be negative", ErrInvalidConfig)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidConfig)
	case c.CacheDir == "":
		return fmt.Errorf("%w: cache dir is empty", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.TimeZone, err)
	}
	return nil
}

// Location is the zone timestamps are rendered in. It falls back to UTC for
// a zone Validate would reject.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
