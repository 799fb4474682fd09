package nodelink

import (
	"bytes"
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/matzehuels/quadart/pkg/quadtree"
)

type halves struct{ w, h int }

func (s halves) Width() int  { return s.w }
func (s halves) Height() int { return s.h }
func (s halves) RGBA(x, y int) color.RGBA {
	if x < s.w/2 {
		return color.RGBA{R: 255, A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

func decomposeTree(t *testing.T) []quadtree.Node {
	t.Helper()
	res, err := quadtree.Decompose(context.Background(), halves{8, 8}, quadtree.Config{
		MaxDepth: 2, ColorThreshold: 1, SizeThreshold: 1, MaxLeaves: 100,
	}, quadtree.WithTree())
	if err != nil {
		t.Fatal(err)
	}
	return res.Tree
}

func TestToDOT(t *testing.T) {
	tree := decomposeTree(t)
	if len(tree) != 5 {
		t.Fatalf("tree size = %d, want 5 (root + 4 uniform quadrants)", len(tree))
	}

	dot := ToDOT(tree, Options{})
	for _, want := range []string{
		"digraph G {",
		`n0 [label="d0"];`,
		`fillcolor="#ff0000"`,
		`fillcolor="#ffffff"`,
		`fontcolor="black"`,
		"n0 -> n1;",
		"n0 -> n4;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "->"); n != 4 {
		t.Errorf("edge count = %d, want 4", n)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(decomposeTree(t), Options{Detailed: true})
	if !strings.Contains(dot, `8x8 @ 0,0`) {
		t.Errorf("detailed label missing root rectangle:\n%s", dot)
	}
	if !strings.Contains(dot, `4x4 @ 4,4`) {
		t.Errorf("detailed label missing bottom-right rectangle:\n%s", dot)
	}
}

func TestToDOTMaxDepth(t *testing.T) {
	dot := ToDOT(decomposeTree(t), Options{MaxDepth: 0})
	if strings.Count(dot, "->") != 4 {
		t.Error("MaxDepth 0 should keep every node")
	}

	tree := []quadtree.Node{
		{ID: 0, Parent: -1, Depth: 0},
		{ID: 1, Parent: 0, Depth: 1},
		{ID: 2, Parent: 1, Depth: 2, Leaf: true},
	}
	dot = ToDOT(tree, Options{MaxDepth: 1})
	if strings.Contains(dot, "n2") {
		t.Errorf("node deeper than MaxDepth rendered:\n%s", dot)
	}
	if !strings.Contains(dot, "dashed") {
		t.Errorf("cut-off inner node not dashed:\n%s", dot)
	}
}

func TestTextColor(t *testing.T) {
	if got := textColor(color.RGBA{A: 255}); got != "white" {
		t.Errorf("textColor(black) = %q, want white", got)
	}
	if got := textColor(color.RGBA{R: 255, G: 255, B: 255, A: 255}); got != "black" {
		t.Errorf("textColor(white) = %q, want black", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(decomposeTree(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `)) {
		t.Errorf("SVG header not normalized: %.200s", svg)
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG("digraph {"); err == nil {
		t.Error("RenderSVG accepted malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox = %q, want %q", got, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox without viewBox changed input: %q", got)
	}
}
