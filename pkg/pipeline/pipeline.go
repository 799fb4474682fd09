// Package pipeline provides the render pipeline for quadart.
//
// This package implements the complete decode → decompose → render pipeline
// used by the CLI and the HTTP API. Both entry points go through the same
// [Runner], so caching, history, and logging behave identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read the input bytes into a pixel source, optionally
//     downscaled so neither side exceeds MaxSide
//  2. Decompose: split the image into uniform leaf regions
//  3. Render: paint the leaves as a raster image, SVG, JSON, or a
//     Graphviz diagram of the region tree
//
// Each stage can be run on its own ([Decode], [Decompose], [Render]).
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Format = pipeline.FormatSVG
//	result, err := runner.Execute(ctx, input, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.svg", result.Artifact, 0644)
package pipeline

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quadart/pkg/cache"
	"github.com/matzehuels/quadart/pkg/errors"
	"github.com/matzehuels/quadart/pkg/imgio"
	"github.com/matzehuels/quadart/pkg/quadtree"
	"github.com/matzehuels/quadart/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is used when no format is given and none can be
	// inferred from an output path.
	DefaultFormat = FormatPNG

	// DefaultOutput is the CLI output path when -o is not given.
	DefaultOutput = "output.png"

	// DefaultTreeDepth limits the tree diagram when TreeDepth is unset.
	DefaultTreeDepth = 4
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpg"
	FormatGIF  = "gif"
	FormatTIFF = "tiff"
	FormatBMP  = "bmp"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatTree = "tree"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatGIF:  true,
	FormatTIFF: true,
	FormatBMP:  true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatTree: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for history records and API use.
type Options struct {
	// Decompose options
	MaxDepth       int     `json:"max_depth"`
	ColorThreshold float64 `json:"color_threshold"`
	SizeThreshold  int     `json:"size_threshold"`
	MaxLeaves      int     `json:"max_leaves,omitempty"`
	Metric         string  `json:"metric,omitempty"`

	// Decode options
	MaxSide int `json:"max_side,omitempty"` // downscale input first; 0 keeps full size

	// Render options
	Format    string `json:"format,omitempty"`
	Outline   string `json:"outline,omitempty"` // #rrggbb
	NoOutline bool   `json:"no_outline,omitempty"`
	TreeDepth int    `json:"tree_depth,omitempty"` // tree format only

	// Refresh skips the artifact cache lookup. The result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Source labels the input in history records (path, URL, "upload").
	Source string `json:"source,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns options with every decompose and render default
// filled in.
func DefaultOptions() Options {
	cfg := quadtree.DefaultConfig()
	return Options{
		MaxDepth:       cfg.MaxDepth,
		ColorThreshold: cfg.ColorThreshold,
		SizeThreshold:  cfg.SizeThreshold,
		MaxLeaves:      cfg.MaxLeaves,
		Metric:         cfg.Metric.String(),
		Format:         DefaultFormat,
		Outline:        render.Hex(render.DefaultOutline),
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifact is the encoded output.
	Artifact []byte

	// Format and ContentType describe Artifact.
	Format      string
	ContentType string

	// Width and Height are the decomposed image size, after any MaxSide
	// downscale.
	Width, Height int

	// Leaves is the number of leaf regions painted.
	Leaves int

	// MaxDepth is the deepest leaf.
	MaxDepth int

	// Truncated is set when the leaf cap stopped decomposition early.
	Truncated bool

	// InputHash is the SHA-256 of the input bytes.
	InputHash string

	// CacheHit reports that Artifact came from the cache.
	CacheHit bool

	// Decomposition is the full decomposition. It is nil on a cache hit.
	Decomposition *quadtree.Result

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DecodeTime    time.Duration
	DecomposeTime time.Duration
	RenderTime    time.Duration
	TotalTime     time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// NormalizeFormat lowercases f and maps aliases (jpeg, tif) to their
// canonical names.
func NormalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
	switch f {
	case "jpeg":
		return FormatJPEG
	case "tif":
		return FormatTIFF
	}
	return f
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[NormalizeFormat(format)] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, jpg, gif, tiff, bmp, svg, json, tree)", format)
	}
	return nil
}

// FormatFromPath infers the output format from path's extension.
// A ".svg" path could hold either the mosaic or the tree diagram, so it
// always maps to svg.
func FormatFromPath(path string) (string, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from %q: no extension", path)
	}
	f := NormalizeFormat(ext)
	if f == FormatTree || !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format from extension %q", ext)
	}
	return f, nil
}

// IsRaster reports whether format is encoded as a bitmap.
func IsRaster(format string) bool {
	_, err := imgio.ParseFormat(format)
	return err == nil
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatTree:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	}
	if f, err := imgio.ParseFormat(format); err == nil {
		return f.ContentType()
	}
	return "application/octet-stream"
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset render fields and the leaf cap. Decompose
// thresholds are taken as given, since zero is a meaningful value for each.
func (o *Options) SetDefaults() {
	if o.MaxLeaves == 0 {
		o.MaxLeaves = quadtree.DefaultMaxLeaves
	}
	if o.Metric == "" {
		o.Metric = quadtree.MetricEuclidean.String()
	}
	o.Format = NormalizeFormat(o.Format)
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Outline == "" && !o.NoOutline {
		o.Outline = render.Hex(render.DefaultOutline)
	}
	if o.Format == FormatTree && o.TreeDepth == 0 {
		o.TreeDepth = DefaultTreeDepth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every option. It does not apply defaults.
func (o *Options) Validate() error {
	if _, err := o.DecomposeConfig(); err != nil {
		return err
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.MaxSide < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_side must be >= 0, got %d", o.MaxSide)
	}
	if o.TreeDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tree_depth must be >= 0, got %d", o.TreeDepth)
	}
	if !o.NoOutline && o.Outline != "" {
		if _, err := render.ParseHex(o.Outline); err != nil {
			return err
		}
	}
	return nil
}

// DecomposeConfig converts the decompose options and validates them.
func (o *Options) DecomposeConfig() (quadtree.Config, error) {
	m, err := quadtree.ParseMetric(o.Metric)
	if err != nil {
		return quadtree.Config{}, err
	}
	cfg := quadtree.Config{
		MaxDepth:       o.MaxDepth,
		ColorThreshold: o.ColorThreshold,
		SizeThreshold:  o.SizeThreshold,
		MaxLeaves:      o.MaxLeaves,
		Metric:         m,
	}
	return cfg, cfg.Validate()
}

// RenderOptions converts the outline settings for the render package.
func (o *Options) RenderOptions() []render.Option {
	if o.NoOutline {
		return []render.Option{render.WithoutOutline()}
	}
	if c, err := render.ParseHex(o.Outline); err == nil {
		return []render.Option{render.WithOutline(c)}
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for the rendered artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		MaxDepth:       o.MaxDepth,
		ColorThreshold: o.ColorThreshold,
		SizeThreshold:  o.SizeThreshold,
		MaxLeaves:      o.MaxLeaves,
		Metric:         o.Metric,
		Format:         o.Format,
		MaxSide:        o.MaxSide,
	}
	if !o.NoOutline {
		k.Outline = strings.ToLower(o.Outline)
	}
	if o.Format == FormatTree {
		// The tree diagram has no outline but does depend on its depth.
		k.Outline = ""
		k.Format = FormatTree + ":" + strconv.Itoa(o.TreeDepth)
	}
	return k
}
