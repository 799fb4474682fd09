package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/matzehuels/quadart/pkg/quadtree"
)

// Raster paints leaves onto a new w×h canvas.
//
// Each leaf is filled with its color over its rectangle, then outlined.
// Areas no leaf covers (a truncated run) stay transparent.
func Raster(leaves []quadtree.Region, w, h int, opts ...Option) *image.RGBA {
	p := newPainter(opts...)
	canvas := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	for _, l := range leaves {
		p.paint(canvas, l)
	}
	return canvas
}

func (p painter) paint(canvas *image.RGBA, l quadtree.Region) {
	fill(canvas, l.Rect(), l.Color)
	if !p.drawOutline {
		return
	}
	x0, y0 := l.X, l.Y
	x1, y1 := l.X+l.Width, l.Y+l.Height
	fill(canvas, image.Rect(x0, y0, x1+1, y0+1), p.outline) // top
	fill(canvas, image.Rect(x0, y1, x1+1, y1+1), p.outline) // bottom
	fill(canvas, image.Rect(x0, y0, x0+1, y1+1), p.outline) // left
	fill(canvas, image.Rect(x1, y0, x1+1, y1+1), p.outline) // right
}

// fill paints r clipped to the canvas.
func fill(canvas *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(canvas.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(canvas, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}
