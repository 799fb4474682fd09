package quadtree

import (
	"math"

	"github.com/matzehuels/quadart/pkg/errors"
)

// Default decomposition settings.
const (
	DefaultMaxDepth       = 7
	DefaultColorThreshold = 10.0
	DefaultSizeThreshold  = 5
	DefaultMaxLeaves      = 100_000
)

// Config controls one decomposition run. Build one per run with
// [DefaultConfig] and adjust fields; Config is never shared as global state.
type Config struct {
	// MaxDepth is the deepest level a region may reach. The root is depth 0.
	MaxDepth int `json:"max_depth" toml:"max_depth"`

	// ColorThreshold is the non-uniformity a region must exceed to be split.
	ColorThreshold float64 `json:"color_threshold" toml:"color_threshold"`

	// SizeThreshold is the side length a region must exceed in both
	// dimensions to be split. Values >= min(width, height) of the image
	// leave the root unsplit.
	SizeThreshold int `json:"size_threshold" toml:"size_threshold"`

	// MaxLeaves caps the number of leaves a run may produce.
	MaxLeaves int `json:"max_leaves" toml:"max_leaves"`

	// Metric selects the non-uniformity formula.
	Metric Metric `json:"metric" toml:"metric"`
}

// DefaultConfig returns the stock settings: depth 7, color threshold 10,
// size threshold 5, at most 100000 leaves, Euclidean metric.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       DefaultMaxDepth,
		ColorThreshold: DefaultColorThreshold,
		SizeThreshold:  DefaultSizeThreshold,
		MaxLeaves:      DefaultMaxLeaves,
		Metric:         MetricEuclidean,
	}
}

// Validate rejects negative or non-finite settings and a non-positive
// leaf cap.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_depth must be >= 0, got %d", c.MaxDepth)
	}
	if !(c.ColorThreshold >= 0) || math.IsInf(c.ColorThreshold, 1) {
		return errors.New(errors.ErrCodeInvalidInput, "color_threshold must be a finite number >= 0, got %g", c.ColorThreshold)
	}
	if c.SizeThreshold < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size_threshold must be >= 0, got %d", c.SizeThreshold)
	}
	if c.MaxLeaves <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_leaves must be > 0, got %d", c.MaxLeaves)
	}
	if c.Metric != MetricEuclidean && c.Metric != MetricManhattan {
		return errors.New(errors.ErrCodeInvalidInput, "unknown metric %v", c.Metric)
	}
	return nil
}

// ShouldSubdivide reports whether r must be split under cfg: it is
// shallower than MaxDepth, less uniform than ColorThreshold, and larger
// than SizeThreshold in both dimensions.
func ShouldSubdivide(r Region, cfg Config) bool {
	return shouldSubdivide(r, cfg, func() float64 { return NonUniformity(r, cfg.Metric) })
}

// shouldSubdivide evaluates the pixel statistic last, and only if the
// depth and size checks pass.
func shouldSubdivide(r Region, cfg Config, nonUniformity func() float64) bool {
	if r.Depth >= cfg.MaxDepth {
		return false
	}
	if r.Width <= cfg.SizeThreshold || r.Height <= cfg.SizeThreshold {
		return false
	}
	return nonUniformity() > cfg.ColorThreshold
}
