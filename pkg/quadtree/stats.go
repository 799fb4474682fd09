package quadtree

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/matzehuels/quadart/pkg/errors"
)

// Metric selects how per-pixel distance from the average color is measured.
type Metric int

const (
	// MetricEuclidean is the RGB Euclidean distance sqrt(dr²+dg²+db²).
	MetricEuclidean Metric = iota
	// MetricManhattan is the mean absolute channel difference (|dr|+|dg|+|db|)/3.
	MetricManhattan
)

// String returns the metric's configuration name.
func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricManhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric parses a metric name as used in flags and config files.
// Matching is case-insensitive; the empty string selects the default.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "euclidean":
		return MetricEuclidean, nil
	case "manhattan":
		return MetricManhattan, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unknown metric %q (must be 'euclidean' or 'manhattan')", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	if m != MetricEuclidean && m != MetricManhattan {
		return nil, fmt.Errorf("unknown metric %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	v, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// distance measures a single pixel's deviation from avg.
func (m Metric) distance(p, avg color.RGBA) float64 {
	dr := float64(p.R) - float64(avg.R)
	dg := float64(p.G) - float64(avg.G)
	db := float64(p.B) - float64(avg.B)
	if m == MetricManhattan {
		return (math.Abs(dr) + math.Abs(dg) + math.Abs(db)) / 3
	}
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// black is returned for regions without addressable pixels.
var black = color.RGBA{A: 255}

// RegionStats holds the statistics the subdivision policy needs.
type RegionStats struct {
	Average       color.RGBA
	NonUniformity float64
	Pixels        int
}

// AverageColor returns the per-channel mean of the region's pixels,
// truncated to integers, with opaque alpha. A region with no addressable
// pixels averages to opaque black.
func AverageColor(r Region) color.RGBA {
	b := r.Bounds()
	n := uint64(b.Dx() * b.Dy())
	if n == 0 {
		return black
	}

	var sr, sg, sb uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := r.src.RGBA(x, y)
			sr += uint64(p.R)
			sg += uint64(p.G)
			sb += uint64(p.B)
		}
	}
	return color.RGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: 255}
}

// NonUniformity returns the mean distance of the region's pixels from its
// own average color under metric m. It is 0 for a region with no pixels.
func NonUniformity(r Region, m Metric) float64 {
	return nonUniformity(r, AverageColor(r), m)
}

// Stats computes the average color and non-uniformity in one call.
func Stats(r Region, m Metric) RegionStats {
	avg := AverageColor(r)
	return RegionStats{
		Average:       avg,
		NonUniformity: nonUniformity(r, avg, m),
		Pixels:        r.PixelCount(),
	}
}

func nonUniformity(r Region, avg color.RGBA, m Metric) float64 {
	b := r.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += m.distance(r.src.RGBA(x, y), avg)
		}
	}
	return sum / float64(n)
}
