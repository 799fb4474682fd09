package pipeline

import (
	"bytes"
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quadart/pkg/errors"
	"github.com/matzehuels/quadart/pkg/imgio"
	"github.com/matzehuels/quadart/pkg/quadtree"
	"github.com/matzehuels/quadart/pkg/render"
	"github.com/matzehuels/quadart/pkg/render/nodelink"
)

// Decode reads input into a pixel source and downscales it so neither
// side exceeds maxSide (0 keeps the full size).
func Decode(input []byte, maxSide int) (*imgio.Source, error) {
	src, err := imgio.DecodeBytes(input)
	if err != nil {
		return nil, err
	}
	return imgio.Fit(src, maxSide), nil
}

// Decompose runs the quadtree decomposition on src. The region tree is
// recorded when the tree format is requested.
func Decompose(ctx context.Context, src quadtree.PixelSource, opts Options, logger *log.Logger) (*quadtree.Result, error) {
	cfg, err := opts.DecomposeConfig()
	if err != nil {
		return nil, err
	}
	qopts := []quadtree.Option{quadtree.WithLogger(logger)}
	if NormalizeFormat(opts.Format) == FormatTree {
		qopts = append(qopts, quadtree.WithTree())
	}
	return quadtree.Decompose(ctx, src, cfg, qopts...)
}

// Render paints a decomposition of a w×h image in opts.Format.
func Render(res *quadtree.Result, w, h int, opts Options) ([]byte, error) {
	format := NormalizeFormat(opts.Format)
	switch format {
	case FormatSVG:
		return render.SVG(res.Leaves, w, h, opts.RenderOptions()...), nil
	case FormatJSON:
		return render.JSON(res, w, h)
	case FormatTree:
		if len(res.Tree) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "tree format needs a decomposition recorded with its region tree")
		}
		dot := nodelink.ToDOT(res.Tree, nodelink.Options{MaxDepth: opts.TreeDepth, Detailed: true})
		svg, err := nodelink.RenderSVG(dot)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSinkWrite, err, "render tree diagram")
		}
		return svg, nil
	}

	f, err := imgio.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	img := render.Raster(res.Leaves, w, h, opts.RenderOptions()...)
	var buf bytes.Buffer
	if err := imgio.NewFileSink().Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
