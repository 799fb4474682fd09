package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quadart/pkg/buildinfo"
	"github.com/matzehuels/quadart/pkg/cache"
	"github.com/matzehuels/quadart/pkg/history"
	"github.com/matzehuels/quadart/pkg/observability"
	"github.com/matzehuels/quadart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "quadart"

	// redisKeyPrefix scopes keys when the cache is shared through Redis.
	redisKeyPrefix = appName
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by --config; empty means the XDG default.
	configPath string
	verbose    bool

	// config is loaded once before any subcommand runs.
	config Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and HTTP observability hooks log through the same logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: c.Logger})
		observability.SetCacheHooks(observability.LogCacheHooks{Logger: c.Logger})
		observability.SetHTTPHooks(observability.LogHTTPHooks{Logger: c.Logger})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Quadart turns images into quadtree art",
		Long:         `Quadart recursively splits an image into quadrants until each region is close to uniform in color, then paints every region with its average color and a thin outline.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(log.DebugLevel)
			}
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging, including pipeline and cache events")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/quadart/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.tuneCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, with the cache and
// history backends the config selects.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cch, keyer, err := c.newCache(ctx, noCache || c.config.Cache.Disabled)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cch, keyer, c.Logger)
	if !c.config.History.Disabled {
		r.History = c.newHistory(ctx)
	}
	return r, nil
}

// newCache picks Redis when a URL is configured and falls back to the file
// cache when Redis is unreachable.
func (c *CLI) newCache(ctx context.Context, disabled bool) (cache.Cache, cache.Keyer, error) {
	if disabled {
		return cache.NewNullCache(), nil, nil
	}
	if url := c.config.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err == nil {
			c.Logger.Debug("using redis cache", "url", url)
			return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "error", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// newHistory picks Mongo when a URI is configured, else the history file.
// History is best effort: any failure disables it with a warning.
func (c *CLI) newHistory(ctx context.Context) history.Store {
	if uri := c.config.History.MongoURI; uri != "" {
		ms, err := history.NewMongoStore(ctx, uri, c.config.History.Database)
		if err == nil {
			return ms
		}
		c.Logger.Warn("mongo unavailable, using history file", "error", err)
	}
	fs, err := history.NewFileStore(c.config.History.Path)
	if err != nil {
		c.Logger.Warn("history disabled", "error", err)
		return nil
	}
	return fs
}

// =============================================================================
// Paths
// =============================================================================

// xdgDir resolves $env/quadart, falling back to ~/<fallback>/quadart when
// env is unset.
func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

func cacheDir() (string, error) { return xdgDir("XDG_CACHE_HOME", ".cache") }

func configFile() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
