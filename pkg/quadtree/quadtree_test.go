package quadtree

import (
	"image/color"
)

// testImage is a minimal in-memory PixelSource.
type testImage struct {
	w, h int
	pix  []color.RGBA
}

func newTestImage(w, h int, fn func(x, y int) color.RGBA) *testImage {
	img := &testImage{w: w, h: h, pix: make([]color.RGBA, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.pix[y*w+x] = fn(x, y)
		}
	}
	return img
}

func (t *testImage) Width() int  { return t.w }
func (t *testImage) Height() int { return t.h }
func (t *testImage) RGBA(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		panic("out of bounds pixel read")
	}
	return t.pix[y*t.w+x]
}

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func solid(c color.RGBA) func(x, y int) color.RGBA {
	return func(int, int) color.RGBA { return c }
}

// splitImage is red above the horizontal midline and blue below it.
func splitImage(w, h int) *testImage {
	return newTestImage(w, h, func(x, y int) color.RGBA {
		if y < h/2 {
			return red
		}
		return blue
	})
}

// grayGradient is a diagonal gray ramp.
func grayGradient(w, h int) *testImage {
	return newTestImage(w, h, func(x, y int) color.RGBA {
		v := uint8((x + y) * 255 / (w + h))
		return color.RGBA{R: v, G: v, B: v, A: 255}
	})
}

// colorGradient varies each channel independently.
func colorGradient(w, h int) *testImage {
	return newTestImage(w, h, func(x, y int) color.RGBA {
		return color.RGBA{
			R: uint8(x * 255 / w),
			G: uint8(y * 255 / h),
			B: uint8((x + y) * 255 / (w + h)),
			A: 255,
		}
	})
}

// checkerboard alternates black and white every pixel.
func checkerboard(w, h int) *testImage {
	return newTestImage(w, h, func(x, y int) color.RGBA {
		if (x+y)%2 == 0 {
			return color.RGBA{A: 255}
		}
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	})
}
