package render

import (
	"encoding/json"
	"image"

	"github.com/matzehuels/quadart/pkg/quadtree"
)

type jsonOutput struct {
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Truncated bool         `json:"truncated,omitempty"`
	Processed int          `json:"processed"`
	MaxDepth  int          `json:"max_depth"`
	Leaves    []jsonRegion `json:"leaves"`
}

type jsonRegion struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Depth  int    `json:"depth"`
	Color  string `json:"color"`
}

// JSON exports a decomposition result for a w×h canvas. Leaf rectangles
// are clamped to the canvas and listed in paint order.
func JSON(res *quadtree.Result, w, h int) ([]byte, error) {
	out := jsonOutput{
		Width:  w,
		Height: h,
		Leaves: []jsonRegion{},
	}
	if res != nil {
		out.Truncated = res.Truncated
		out.Processed = res.Processed
		out.MaxDepth = res.MaxDepth
		out.Leaves = make([]jsonRegion, 0, len(res.Leaves))
		canvas := image.Rect(0, 0, w, h)
		for _, l := range res.Leaves {
			b := l.Rect().Intersect(canvas)
			out.Leaves = append(out.Leaves, jsonRegion{
				X:      b.Min.X,
				Y:      b.Min.Y,
				Width:  b.Dx(),
				Height: b.Dy(),
				Depth:  l.Depth,
				Color:  Hex(l.Color),
			})
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
