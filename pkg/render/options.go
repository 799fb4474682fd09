package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/quadart/pkg/errors"
)

// DefaultOutline is the border color when none is configured.
var DefaultOutline = color.RGBA{A: 255}

// Option configures [Raster] and [SVG].
type Option func(*painter)

type painter struct {
	outline     color.RGBA
	drawOutline bool
}

// WithOutline sets the border color.
func WithOutline(c color.RGBA) Option {
	return func(p *painter) { p.outline = c; p.drawOutline = true }
}

// WithoutOutline fills leaves without drawing borders.
func WithoutOutline() Option { return func(p *painter) { p.drawOutline = false } }

func newPainter(opts ...Option) painter {
	p := painter{outline: DefaultOutline, drawOutline: true}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Hex formats c as #rrggbb. Alpha is dropped.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb", "rrggbb" or the short "#rgb" form into an
// opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q: want #rrggbb", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(h), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
