package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/quadart/internal/server"
	"github.com/matzehuels/quadart/pkg/errors"
	"github.com/matzehuels/quadart/pkg/pipeline"
	"github.com/matzehuels/quadart/pkg/quadtree"
	"github.com/matzehuels/quadart/pkg/render"
)

// Config is the on-disk configuration file.
//
//	[decompose]
//	max_depth = 7
//	color_threshold = 10.0
//	size_threshold = 5
//	max_leaves = 100000
//	metric = "euclidean"
//
//	[render]
//	outline = "#000000"
//	no_outline = false
//	max_side = 0
//
//	[cache]
//	disabled = false
//	redis_url = ""
//
//	[history]
//	disabled = false
//	mongo_uri = ""
//
//	[server]
//	addr = ":8080"
//	max_body_mb = 32
type Config struct {
	Decompose quadtree.Config `toml:"decompose"`
	Render    RenderConfig    `toml:"render"`
	Cache     CacheConfig     `toml:"cache"`
	History   HistoryConfig   `toml:"history"`
	Server    ServerConfig    `toml:"server"`
}

// RenderConfig holds the [render] section.
type RenderConfig struct {
	Outline   string `toml:"outline"`
	NoOutline bool   `toml:"no_outline"`
	MaxSide   int    `toml:"max_side"`
}

// CacheConfig holds the [cache] section.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	RedisURL string `toml:"redis_url"`
}

// HistoryConfig holds the [history] section.
type HistoryConfig struct {
	Disabled bool   `toml:"disabled"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
	Path     string `toml:"path"` // history file; empty uses the XDG state dir
}

// ServerConfig holds the [server] section.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	MaxBodyMB int    `toml:"max_body_mb"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Decompose: quadtree.DefaultConfig(),
		Render:    RenderConfig{Outline: render.Hex(render.DefaultOutline)},
		Server: ServerConfig{
			Addr:      server.DefaultAddr,
			MaxBodyMB: server.DefaultMaxBodyBytes >> 20,
		},
	}
}

// loadConfig reads the config file over the defaults. An explicit path must
// exist; a missing default file just yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the settings that cannot be caught later by the pipeline.
func (c Config) Validate() error {
	if err := c.Decompose.Validate(); err != nil {
		return err
	}
	if !c.Render.NoOutline && c.Render.Outline != "" {
		if _, err := render.ParseHex(c.Render.Outline); err != nil {
			return err
		}
	}
	if c.Render.MaxSide < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.max_side must be >= 0, got %d", c.Render.MaxSide)
	}
	if c.Server.MaxBodyMB < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body_mb must be >= 0, got %d", c.Server.MaxBodyMB)
	}
	return nil
}

// PipelineOptions converts the file settings to pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.MaxDepth = c.Decompose.MaxDepth
	opts.ColorThreshold = c.Decompose.ColorThreshold
	opts.SizeThreshold = c.Decompose.SizeThreshold
	opts.MaxLeaves = c.Decompose.MaxLeaves
	opts.Metric = c.Decompose.Metric.String()
	opts.Outline = c.Render.Outline
	opts.NoOutline = c.Render.NoOutline
	opts.MaxSide = c.Render.MaxSide
	return opts
}

// ServerOptions converts the [server] section for the HTTP API.
func (c Config) ServerOptions() server.Config {
	return server.Config{
		Addr:         c.Server.Addr,
		MaxBodyBytes: int64(c.Server.MaxBodyMB) << 20,
		Defaults:     c.PipelineOptions(),
	}
}
