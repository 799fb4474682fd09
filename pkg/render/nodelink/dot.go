package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/quadart/pkg/quadtree"
	"github.com/matzehuels/quadart/pkg/render"
)

// Options controls [ToDOT].
type Options struct {
	// Detailed adds the region rectangle ("WxH @ X,Y") to each label.
	Detailed bool

	// MaxDepth hides regions deeper than this; zero or less shows all.
	MaxDepth int
}

const dotPreamble = `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  ranksep=0.5;
  nodesep=0.2;
  node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.1,0.05"];

`

// ToDOT writes tree as a top-down Graphviz digraph. Node IDs are "n<ID>".
// Leaves are filled with their color; inner regions that MaxDepth cut off
// are drawn dashed and grey.
func ToDOT(tree []quadtree.Node, opts Options) string {
	visible := func(n quadtree.Node) bool {
		return opts.MaxDepth <= 0 || n.Depth <= opts.MaxDepth
	}

	var b strings.Builder
	b.WriteString(dotPreamble)
	for _, n := range tree {
		if visible(n) {
			fmt.Fprintf(&b, "  n%d [%s];\n", n.ID, nodeAttrs(n, opts))
		}
	}
	b.WriteByte('\n')
	for _, n := range tree {
		if n.Parent >= 0 && visible(n) {
			fmt.Fprintf(&b, "  n%d -> n%d;\n", n.Parent, n.ID)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func nodeAttrs(n quadtree.Node, opts Options) string {
	label := "d" + strconv.Itoa(n.Depth)
	if n.Leaf {
		label += " " + render.Hex(n.Color)
	}
	if opts.Detailed {
		r := n.Bounds
		label += fmt.Sprintf("\n%dx%d @ %d,%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}

	attrs := fmt.Sprintf("label=%q", label)
	switch {
	case n.Leaf:
		attrs += fmt.Sprintf(", fillcolor=%q, fontcolor=%q", render.Hex(n.Color), textColor(n.Color))
	case opts.MaxDepth > 0 && n.Depth == opts.MaxDepth:
		attrs += `, style="rounded,filled,dashed", fillcolor=lightgrey, fontcolor=black`
	}
	return attrs
}

// textColor returns the label color readable on a c background, by
// Rec. 601 luma.
func textColor(c color.RGBA) string {
	if 299*int(c.R)+587*int(c.G)+114*int(c.B) < 128*1000 {
		return "white"
	}
	return "black"
}

// RenderSVG lays out dot with the embedded Graphviz and returns an SVG
// sized in pixels rather than points.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var out bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &out); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return normalizeViewBox(out.Bytes()), nil
}

var (
	svgOpenRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's <svg> tag, which sizes the image in
// points, with one whose width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[3]), 64)
	h, errH := strconv.ParseFloat(string(m[4]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgOpenRe.ReplaceAllLiteral(svg, []byte(tag))
}
