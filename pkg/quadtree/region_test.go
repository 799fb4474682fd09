package quadtree

import (
	"image"
	"testing"

	"github.com/matzehuels/quadart/pkg/errors"
)

func TestNewRegion(t *testing.T) {
	src := newTestImage(10, 10, solid(red))

	tests := []struct {
		name    string
		w, h, d int
		wantErr bool
	}{
		{"valid", 5, 5, 0, false},
		{"deep", 1, 1, 12, false},
		{"zero width", 0, 5, 0, true},
		{"zero height", 5, 0, 0, true},
		{"negative", -1, 5, 0, true},
		{"negative depth", 5, 5, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegion(src, 0, 0, tt.w, tt.h, tt.d)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("NewRegion() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}

	if _, err := NewRegion(nil, 0, 0, 1, 1, 0); err == nil {
		t.Error("NewRegion(nil source) should fail")
	}
}

func TestRoot(t *testing.T) {
	src := newTestImage(100, 60, solid(red))
	r, err := Root(src)
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	if r.X != 0 || r.Y != 0 || r.Width != 100 || r.Height != 60 || r.Depth != 0 {
		t.Errorf("Root() = %+v, want 0,0 100x60 depth 0", r)
	}
	if r.Resolved {
		t.Error("root should not be resolved")
	}
	if r.Source() != PixelSource(src) {
		t.Error("root should share the source")
	}

	if _, err := Root(newTestImage(0, 0, solid(red))); err == nil {
		t.Error("Root() of empty image should fail")
	}
}

func TestSplitFirstChild(t *testing.T) {
	src := newTestImage(100, 100, solid(red))
	r, _ := Root(src)
	children := r.Split()

	tl := children[0]
	if tl.X != 0 || tl.Y != 0 || tl.Width != 50 || tl.Height != 50 || tl.Depth != 1 {
		t.Errorf("top-left = %+v, want 0,0 50x50 depth 1", tl)
	}
}

func TestSplitOddSizes(t *testing.T) {
	src := newTestImage(7, 5, solid(red))
	r, _ := Root(src)
	c := r.Split()

	want := []image.Rectangle{
		image.Rect(0, 0, 4, 3), // top-left takes the ceiling
		image.Rect(4, 0, 7, 3),
		image.Rect(0, 3, 4, 5),
		image.Rect(4, 3, 7, 5),
	}
	for i, w := range want {
		if got := c[i].Rect(); got != w {
			t.Errorf("child %d = %v, want %v", i, got, w)
		}
	}
}

func TestSplitTiling(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {5, 8}, {17, 4}, {64, 64}, {33, 31}}

	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		src := newTestImage(w+3, h+3, solid(red))
		parent, err := NewRegion(src, 2, 1, w, h, 3)
		if err != nil {
			t.Fatalf("NewRegion(%dx%d): %v", w, h, err)
		}

		counts := make(map[image.Point]int)
		area := 0
		for _, c := range parent.Split() {
			if c.Depth != parent.Depth+1 {
				t.Errorf("%dx%d: child depth = %d, want %d", w, h, c.Depth, parent.Depth+1)
			}
			if c.Source() != parent.Source() {
				t.Errorf("%dx%d: child does not share the source", w, h)
			}
			if c.Width < 0 || c.Height < 0 {
				t.Fatalf("%dx%d: negative child size %dx%d", w, h, c.Width, c.Height)
			}
			area += c.Width * c.Height
			for y := c.Y; y < c.Y+c.Height; y++ {
				for x := c.X; x < c.X+c.Width; x++ {
					counts[image.Pt(x, y)]++
				}
			}
		}

		if area != w*h {
			t.Errorf("%dx%d: children area = %d, want %d", w, h, area, w*h)
		}
		for y := parent.Y; y < parent.Y+h; y++ {
			for x := parent.X; x < parent.X+w; x++ {
				if n := counts[image.Pt(x, y)]; n != 1 {
					t.Errorf("%dx%d: pixel (%d,%d) covered %d times", w, h, x, y, n)
				}
			}
		}
		if len(counts) != w*h {
			t.Errorf("%dx%d: children cover %d pixels, want %d", w, h, len(counts), w*h)
		}
	}
}

func TestBoundsClamp(t *testing.T) {
	src := newTestImage(10, 8, solid(red))

	tests := []struct {
		name  string
		x, y  int
		w, h  int
		want  image.Rectangle
		count int
	}{
		{"inside", 2, 2, 4, 4, image.Rect(2, 2, 6, 6), 16},
		{"past right edge", 8, 0, 5, 2, image.Rect(8, 0, 10, 2), 4},
		{"past bottom edge", 0, 6, 3, 10, image.Rect(0, 6, 3, 8), 6},
		{"fully outside", 12, 12, 3, 3, image.Rectangle{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegion(src, tt.x, tt.y, tt.w, tt.h, 0)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.Bounds(); got != tt.want && !(got.Empty() && tt.want.Empty()) {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
			if got := r.PixelCount(); got != tt.count {
				t.Errorf("PixelCount() = %d, want %d", got, tt.count)
			}
		})
	}
}
