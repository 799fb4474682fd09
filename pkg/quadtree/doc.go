// Package quadtree decomposes a raster image into a set of flat-colored
// rectangular regions.
//
// # Overview
//
// Decomposition starts from a single [Region] covering the whole image and
// repeatedly splits regions into four quadrants until each region is
// uniform enough, small enough, or deep enough. The regions that stop
// splitting are leaves: each carries the average color of the pixels it
// covers, and together the leaves tile the image exactly.
//
// # Basic Usage
//
// Wrap pixel data in a [PixelSource], pick a [Config], and call [Decompose]:
//
//	cfg := quadtree.DefaultConfig()
//	cfg.ColorThreshold = 20
//	res, err := quadtree.Decompose(ctx, src, cfg)
//	if err != nil {
//	    return err
//	}
//	for _, leaf := range res.Leaves {
//	    fmt.Println(leaf.Bounds(), leaf.Color)
//	}
//
// # Subdivision Policy
//
// [ShouldSubdivide] splits a region only when all three hold:
//
//   - its depth is below [Config.MaxDepth]
//   - its [NonUniformity] exceeds [Config.ColorThreshold]
//   - both its width and height exceed [Config.SizeThreshold]
//
// Non-uniformity is the mean per-pixel color distance from the region's
// own average. [MetricEuclidean] (the default) uses RGB Euclidean
// distance; [MetricManhattan] uses the mean absolute channel difference.
// The two metrics react differently to the same numeric threshold, so a
// run uses exactly one of them.
//
// # Work Bound
//
// The driver walks regions breadth first through an explicit queue and
// stops once [Config.MaxLeaves] leaves exist. A run that hits the cap is
// not an error: [Result.Truncated] is set, a warning is logged, and the
// leaves collected so far are returned.
//
// # Concurrency
//
// A decomposition run is single threaded. Every region of a run shares the
// same read-only [PixelSource]; nothing in this package writes to it.
package quadtree
