// Package cli is the hnpeek command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fragmede/hnpeek/internal/api"
	"github.com/fragmede/hnpeek/internal/cache"
	"github.com/fragmede/hnpeek/internal/config"
	"github.com/fragmede/hnpeek/internal/logging"
	"github.com/fragmede/hnpeek/internal/ui"
)

// purgeAge is how old a cache row gets before startup removes it.
const purgeAge = 7 * 24 * time.Hour

// runFunc starts the program for a resolved config.
type runFunc func(ctx context.Context, cfg config.Config) error

type rootFlags struct {
	configPath string
	feed       string
	count      int
	noCache    bool
	debug      bool
	tz         string
	logFile    string
}

// NewRootCmd creates the hnpeek command.
func NewRootCmd(ver string) *cobra.Command {
	return newRootCmd(ver, runApp)
}

func newRootCmd(ver string, run runFunc) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "hnpeek",
		Short:         "Browse Hacker News with a live preview pane",
		Version:       ver,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	f.StringVar(&flags.feed, "feed", string(api.FeedTop), "feed to open: top, new, best, ask, show, jobs")
	f.IntVarP(&flags.count, "count", "n", 10, "number of stories to list")
	f.BoolVar(&flags.noCache, "no-cache", false, "bypass the local fetch cache")
	f.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	f.StringVar(&flags.tz, "tz", "UTC", "timezone for timestamps")
	f.StringVar(&flags.logFile, "log-file", "", "log file (default in the cache dir)")

	return cmd
}

// resolveConfig loads the config file and applies the flags the user set.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	if changed("feed") {
		cfg.Feed = api.Feed(flags.feed)
	}
	if changed("count") {
		cfg.StoryCount = flags.count
	}
	if flags.noCache {
		cfg.CacheEnabled = false
	}
	if flags.debug {
		cfg.LogLevel = zerolog.DebugLevel.String()
	}
	if changed("tz") {
		cfg.TimeZone = flags.tz
	}
	if changed("log-file") {
		cfg.LogPath = flags.logFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runApp(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app, cleanup, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}

// buildApp opens everything the app needs. cleanup releases it in reverse
// order and is a no-op after a failed build.
func buildApp(ctx context.Context, cfg config.Config) (*ui.App, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, cleanup, fmt.Errorf("creating cache dir: %w", err)
	}

	log, closer, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogPath})
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, closer.Close)

	cliLog := logging.Component(log, "cli")
	apiLog := logging.Component(log, "api")
	cliLog.Info().
		Str("feed", string(cfg.Feed)).
		Int("count", cfg.StoryCount).
		Bool("cache", cfg.CacheEnabled).
		Msg("starting")

	var src api.ItemSource = api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(apiLog),
	)
	if cfg.CacheEnabled {
		db, err := cache.Open(cfg.DBPath)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("opening cache: %w", err)
		}
		closers = append(closers, db.Close)

		cacheLog := logging.Component(log, "cache")
		if err := db.Purge(time.Now().Add(-purgeAge).Unix()); err != nil {
			cacheLog.Warn().Err(err).Msg("purging cache")
		}
		src = cache.NewSource(db, src, cfg.StoryListTTL, cfg.ItemTTL, cacheLog)
	}

	remote := api.NewFetcher(src, apiLog)
	app := ui.NewApp(ctx, cfg, remote, logging.Component(log, "ui"))
	return app, cleanup, nil
}
