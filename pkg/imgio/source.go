package imgio

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/matzehuels/quadart/pkg/errors"
)

// Source is a decoded image held as non-premultiplied RGBA.
//
// A Source is immutable once created and safe for concurrent reads.
// Every region of a decomposition run reads pixels through the same
// Source; nothing copies the pixel buffer per region.
type Source struct {
	img *image.NRGBA
}

// FromImage wraps img, converting it to NRGBA with its origin at (0, 0).
// The pixels are copied once so later changes to img do not leak into a run.
func FromImage(img image.Image) *Source {
	return &Source{img: imaging.Clone(img)}
}

// Width returns the image width in pixels.
func (s *Source) Width() int { return s.img.Rect.Dx() }

// Height returns the image height in pixels.
func (s *Source) Height() int { return s.img.Rect.Dy() }

// RGBA returns the pixel at (x, y). Coordinates must be in range.
func (s *Source) RGBA(x, y int) color.RGBA {
	i := y*s.img.Stride + x*4
	p := s.img.Pix[i : i+4 : i+4]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Open reads and decodes the image file at path.
func Open(path string) (*Source, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open %s", path)
	}
	return newSource(img)
}

// Decode reads an encoded image from r.
func Decode(r io.Reader) (*Source, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode image")
	}
	return newSource(img)
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSource, "empty image data")
	}
	return Decode(bytes.NewReader(data))
}

func newSource(img image.Image) (*Source, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSource, "image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}
	return FromImage(img), nil
}

// Fit scales s down so neither side exceeds maxSide, keeping the aspect
// ratio. It returns s unchanged when maxSide <= 0 or the image already fits.
func Fit(s *Source, maxSide int) *Source {
	if maxSide <= 0 || (s.Width() <= maxSide && s.Height() <= maxSide) {
		return s
	}
	return &Source{img: imaging.Fit(s.img, maxSide, maxSide, imaging.Lanczos)}
}
