// Package pkg provides the core libraries for quadart.
//
// # Overview
//
// Quadart turns an image into quadtree art: the image is split into
// quadrants, recursively, until each region is close to a single color,
// and every region is then painted with its average color and a thin
// outline. The pkg directory is organized into these areas:
//
//  1. [quadtree] - Regions, color statistics, the subdivision rule and the
//     breadth-first decomposition driver
//  2. [render] - Painting leaves as a raster image, SVG or JSON, and
//     [render/nodelink] for a Graphviz diagram of the region tree
//  3. [imgio] - Decoding inputs and encoding or saving raster outputs
//  4. [pipeline] - Orchestration (decode → decompose → render) with caching
//     and history
//  5. [cache], [history], [httputil] - Infrastructure: artifact and download
//     caches, run records, and remote fetching
//
// # Architecture
//
// The typical data flow through quadart:
//
//	Image file, URL, or upload
//	         ↓
//	    [imgio] package (decode, optional downscale)
//	         ↓
//	    [quadtree] package (FIFO subdivision into leaves)
//	         ↓
//	    [render] package (fill + outline each leaf)
//	         ↓
//	    PNG/JPEG/GIF/TIFF/BMP/SVG/JSON output
//
// # Quick Start
//
// Decompose an image and save the result:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/quadart/pkg/imgio"
//	    "github.com/matzehuels/quadart/pkg/quadtree"
//	    "github.com/matzehuels/quadart/pkg/render"
//	)
//
//	// 1. Load the image
//	src, _ := imgio.Open("photo.jpg")
//
//	// 2. Decompose
//	res, _ := quadtree.Decompose(context.Background(), src, quadtree.DefaultConfig())
//
//	// 3. Paint the leaves
//	img := render.Raster(res.Leaves, src.Width(), src.Height())
//
//	// 4. Save
//	_ = imgio.NewFileSink().Save(img, "output.png")
//
// Most callers go through [pipeline.Runner] instead, which adds caching,
// history and every output format.
//
// ## Errors
//
// [errors] defines coded errors shared across packages. Check codes with
// errors.Is(err, errors.ErrCodeInvalidSource) rather than comparing text.
//
// ## Observability
//
// [observability] exposes hook interfaces for the pipeline, cache and HTTP
// client. Hooks default to no-ops; the CLI installs logging hooks in
// verbose mode.
//
// [quadtree]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/quadtree
// [render]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/render/nodelink
// [imgio]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/imgio
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/cache
// [history]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/history
// [httputil]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/quadart/pkg/observability
package pkg
