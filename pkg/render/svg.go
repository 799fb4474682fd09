package render

import (
	"bytes"
	"fmt"
	"image"

	"github.com/matzehuels/quadart/pkg/quadtree"
)

// SVG renders leaves as a w×h SVG document with one <rect> per leaf, in
// paint order.
func SVG(leaves []quadtree.Region, w, h int, opts ...Option) []byte {
	p := newPainter(opts...)
	w, h = max(w, 0), max(h, 0)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		w, h, w, h)
	if p.drawOutline {
		fmt.Fprintf(&buf, `  <g stroke="%s" stroke-width="1" shape-rendering="crispEdges">`+"\n", Hex(p.outline))
	} else {
		buf.WriteString(`  <g shape-rendering="crispEdges">` + "\n")
	}
	canvas := image.Rect(0, 0, w, h)
	for _, l := range leaves {
		b := l.Rect().Intersect(canvas)
		if b.Empty() {
			continue
		}
		fmt.Fprintf(&buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			b.Min.X, b.Min.Y, b.Dx(), b.Dy(), Hex(l.Color))
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}
