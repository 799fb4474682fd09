package quadtree

import (
	"image"
	"image/color"

	"github.com/matzehuels/quadart/pkg/errors"
)

// PixelSource is read-only, randomly addressable pixel data.
//
// Implementations must return a color for every (x, y) with
// 0 <= x < Width() and 0 <= y < Height(). The decomposition never asks
// for pixels outside that range.
type PixelSource interface {
	Width() int
	Height() int
	RGBA(x, y int) color.RGBA
}

// Region is an axis-aligned rectangle of the source image at a given
// subdivision depth.
//
// Regions are values: splitting produces new regions and never modifies
// the parent. Color is only meaningful once Resolved is true, which
// happens when the driver confirms the region as a leaf.
type Region struct {
	X, Y          int // top-left corner in source pixels
	Width, Height int
	Depth         int // 0 for the root, parent depth + 1 for children

	Color    color.RGBA // average color, valid when Resolved
	Resolved bool

	src PixelSource
}

// NewRegion creates a region over src. Width and height must be positive.
func NewRegion(src PixelSource, x, y, w, h, depth int) (Region, error) {
	if src == nil {
		return Region{}, errors.New(errors.ErrCodeInvalidInput, "region needs a pixel source")
	}
	if w <= 0 || h <= 0 {
		return Region{}, errors.New(errors.ErrCodeInvalidInput, "region size must be positive, got %dx%d", w, h)
	}
	if depth < 0 {
		return Region{}, errors.New(errors.ErrCodeInvalidInput, "region depth must be >= 0, got %d", depth)
	}
	return Region{X: x, Y: y, Width: w, Height: h, Depth: depth, src: src}, nil
}

// Root returns the depth-0 region covering all of src.
func Root(src PixelSource) (Region, error) {
	if src == nil {
		return Region{}, errors.New(errors.ErrCodeInvalidInput, "region needs a pixel source")
	}
	return NewRegion(src, 0, 0, src.Width(), src.Height(), 0)
}

// Source returns the pixel source shared by the region and its descendants.
func (r Region) Source() PixelSource { return r.src }

// Rect returns the region's nominal rectangle, without clamping.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Bounds returns the part of the region that lies inside the source.
// All pixel reads iterate Bounds, never Rect.
func (r Region) Bounds() image.Rectangle {
	if r.src == nil {
		return image.Rectangle{}
	}
	return r.Rect().Intersect(image.Rect(0, 0, r.src.Width(), r.src.Height()))
}

// PixelCount is the number of addressable pixels in the region.
func (r Region) PixelCount() int {
	b := r.Bounds()
	return b.Dx() * b.Dy()
}

// Empty reports whether the region has zero width or height.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Split divides the region into top-left, top-right, bottom-left and
// bottom-right children, in that order.
//
// The split point uses ceiling division, so odd remainders go to the
// leading (left, top) children and the four children tile the parent
// exactly. A parent that is one pixel wide or high yields children with
// zero width or height; those cover no pixels and callers skip them.
func (r Region) Split() [4]Region {
	nw := (r.Width + 1) / 2
	nh := (r.Height + 1) / 2
	rw := r.Width - nw
	rh := r.Height - nh
	d := r.Depth + 1

	return [4]Region{
		{X: r.X, Y: r.Y, Width: nw, Height: nh, Depth: d, src: r.src},
		{X: r.X + nw, Y: r.Y, Width: rw, Height: nh, Depth: d, src: r.src},
		{X: r.X, Y: r.Y + nh, Width: nw, Height: rh, Depth: d, src: r.src},
		{X: r.X + nw, Y: r.Y + nh, Width: rw, Height: rh, Depth: d, src: r.src},
	}
}

// resolve returns a copy of the region with its leaf color set.
func (r Region) resolve(c color.RGBA) Region {
	r.Color = c
	r.Resolved = true
	return r
}
