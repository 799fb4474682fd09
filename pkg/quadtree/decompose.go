package quadtree

import (
	"context"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quadart/pkg/errors"
)

const (
	// ctxCheckInterval is how many regions are processed between context checks.
	ctxCheckInterval = 1024

	// compactAfter is the consumed queue prefix length that triggers
	// reusing the queue's backing array.
	compactAfter = 4096
)

// Result is the outcome of a decomposition run.
type Result struct {
	// Leaves are the terminal regions in emission (breadth-first) order,
	// each with its color resolved.
	Leaves []Region

	// Truncated is set when the run stopped at Config.MaxLeaves with work
	// still queued. The leaves are usable but do not cover the whole image.
	Truncated bool

	// Processed counts regions taken off the queue.
	Processed int

	// MaxDepth is the deepest leaf depth reached.
	MaxDepth int

	// Tree holds every visited region when the run used [WithTree].
	Tree []Node
}

// Node is one region of the decomposition hierarchy, recorded by [WithTree].
type Node struct {
	ID     int             `json:"id"`
	Parent int             `json:"parent"` // -1 for the root
	Bounds image.Rectangle `json:"bounds"`
	Depth  int             `json:"depth"`
	Leaf   bool            `json:"leaf"`
	Color  color.RGBA      `json:"color"` // set for leaves
}

// DepthHistogram counts leaves per depth.
func (r *Result) DepthHistogram() map[int]int {
	h := make(map[int]int)
	for _, l := range r.Leaves {
		h[l.Depth]++
	}
	return h
}

// Coverage returns the number of source pixels covered by leaves. It equals
// the image area unless the run was truncated.
func (r *Result) Coverage() int {
	n := 0
	for _, l := range r.Leaves {
		n += l.PixelCount()
	}
	return n
}

// Option configures [Decompose].
type Option func(*driver)

// WithLogger sets the logger used for the capacity warning and debug output.
func WithLogger(l *log.Logger) Option {
	return func(d *driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTree records the full region hierarchy in [Result.Tree].
func WithTree() Option {
	return func(d *driver) { d.tree = true }
}

type driver struct {
	logger *log.Logger
	tree   bool
}

type queued struct {
	region Region
	id     int
}

// Decompose splits src into leaves under cfg.
//
// Regions are processed first in, first out starting from the root. Each
// region is either split into its four children, which join the back of
// the queue, or resolved as a leaf with its average color. Once
// cfg.MaxLeaves leaves exist the run stops, logs a warning and returns
// what it has with Result.Truncated set.
//
// Decompose returns an error only for an invalid config, a nil or empty
// source, or a cancelled context.
func Decompose(ctx context.Context, src PixelSource, cfg Config, opts ...Option) (*Result, error) {
	d := driver{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(&d)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := Root(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid pixel source")
	}

	res := &Result{}
	queue := []queued{{region: root, id: 0}}
	if d.tree {
		res.Tree = append(res.Tree, Node{ID: 0, Parent: -1, Bounds: root.Bounds(), Depth: 0})
	}

	for head := 0; head < len(queue); head++ {
		if len(res.Leaves) >= cfg.MaxLeaves {
			res.Truncated = true
			d.logger.Warn("leaf limit reached, stopping subdivision",
				"code", errors.ErrCodeCapacityExceeded,
				"max_leaves", cfg.MaxLeaves,
				"pending", len(queue)-head)
			break
		}
		if res.Processed%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if head >= compactAfter && head*2 >= len(queue) {
			queue = append(queue[:0], queue[head:]...)
			head = 0
		}

		item := queue[head]
		res.Processed++

		r := item.region
		if r.X >= root.Width || r.Y >= root.Height {
			continue
		}

		var st *RegionStats
		split := shouldSubdivide(r, cfg, func() float64 {
			s := Stats(r, cfg.Metric)
			st = &s
			return s.NonUniformity
		})

		if split {
			for _, child := range r.Split() {
				if child.Empty() {
					continue
				}
				var id int
				if d.tree {
					id = len(res.Tree)
					res.Tree = append(res.Tree, Node{ID: id, Parent: item.id, Bounds: child.Bounds(), Depth: child.Depth})
				}
				queue = append(queue, queued{region: child, id: id})
			}
			continue
		}

		var avg color.RGBA
		if st != nil {
			avg = st.Average
		} else {
			avg = AverageColor(r)
		}
		leaf := r.resolve(avg)
		res.Leaves = append(res.Leaves, leaf)
		res.MaxDepth = max(res.MaxDepth, leaf.Depth)
		if d.tree {
			res.Tree[item.id].Leaf = true
			res.Tree[item.id].Color = avg
		}
	}

	d.logger.Debug("decomposition finished",
		"leaves", len(res.Leaves),
		"processed", res.Processed,
		"max_depth", res.MaxDepth,
		"truncated", res.Truncated)
	return res, nil
}
