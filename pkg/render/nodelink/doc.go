// Package nodelink draws the region hierarchy of a decomposition as a
// Graphviz node-link diagram: one box per region, edges from each region
// to its four children, leaves filled with their color.
//
//	res, _ := quadtree.Decompose(ctx, src, cfg, quadtree.WithTree())
//	svg, err := nodelink.RenderSVG(nodelink.ToDOT(res.Tree, nodelink.Options{MaxDepth: 3}))
//
// Photographs yield tens of thousands of regions, which Graphviz lays out
// slowly; [Options].MaxDepth trims the diagram. Layout runs in-process
// through [github.com/goccy/go-graphviz], so no Graphviz install is needed.
package nodelink
