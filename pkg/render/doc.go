// Package render paints decomposition results.
//
// # Overview
//
// A decomposition produces an ordered set of leaf regions, each with a
// resolved color. This package turns that leaf set into output:
//
//   - [Raster]: an RGBA canvas, every leaf filled and outlined
//   - [SVG]: the same picture as one <rect> per leaf
//   - [JSON]: the leaf set as data, for other tools
//   - the decomposition hierarchy as a Graphviz diagram (in [nodelink])
//
// # Paint Order
//
// Leaves are painted in the order the decomposition emitted them. Each
// leaf's outline runs along its top and left edges and one pixel past its
// right and bottom edges, so neighbouring leaves share border lines and a
// later leaf may draw over an earlier leaf's outline. Pixels outside the
// canvas are clipped, never wrapped.
//
//	res, _ := quadtree.Decompose(ctx, src, cfg)
//	img := render.Raster(res.Leaves, src.Width(), src.Height())
//	svg := render.SVG(res.Leaves, src.Width(), src.Height(), render.WithoutOutline())
//
// [nodelink]: github.com/matzehuels/quadart/pkg/render/nodelink
package render
