package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/quadart/pkg/pipeline"
)

// optionFlags holds the decompose and render flags shared by render,
// inspect and tune. Values only reach the options when the flag was given,
// so the config file stays in charge otherwise.
type optionFlags struct {
	maxDepth       int
	colorThreshold float64
	sizeThreshold  int
	maxLeaves      int
	metric         string
	maxSide        int
	outline        string
	noOutline      bool
}

// registerDecompose adds the flags that shape the decomposition.
func (f *optionFlags) registerDecompose(fs *pflag.FlagSet) {
	fs.IntVar(&f.maxDepth, "max-depth", 0, "deepest subdivision level (default from config, 7)")
	fs.Float64Var(&f.colorThreshold, "color-threshold", 0, "non-uniformity a region must exceed to split (default 10)")
	fs.IntVar(&f.sizeThreshold, "size-threshold", 0, "side length a region must exceed to split (default 5)")
	fs.IntVar(&f.maxLeaves, "max-leaves", 0, "stop subdividing after this many leaves (default 100000)")
	fs.StringVar(&f.metric, "metric", "", "non-uniformity metric: euclidean (default), manhattan")
	fs.IntVar(&f.maxSide, "max-side", 0, "downscale the input so neither side exceeds N pixels (0 keeps full size)")
}

// registerOutline adds the flags that style leaf borders.
func (f *optionFlags) registerOutline(fs *pflag.FlagSet) {
	fs.StringVar(&f.outline, "outline", "", "outline color as #rrggbb (default #000000)")
	fs.BoolVar(&f.noOutline, "no-outline", false, "paint leaves without outlines")
}

// apply copies every flag the user set onto opts.
func (f *optionFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("max-depth") {
		opts.MaxDepth = f.maxDepth
	}
	if fs.Changed("color-threshold") {
		opts.ColorThreshold = f.colorThreshold
	}
	if fs.Changed("size-threshold") {
		opts.SizeThreshold = f.sizeThreshold
	}
	if fs.Changed("max-leaves") {
		opts.MaxLeaves = f.maxLeaves
	}
	if fs.Changed("metric") {
		opts.Metric = f.metric
	}
	if fs.Changed("max-side") {
		opts.MaxSide = f.maxSide
	}
	if fs.Changed("outline") {
		opts.Outline = f.outline
		opts.NoOutline = false
	}
	if fs.Changed("no-outline") {
		opts.NoOutline = f.noOutline
	}
}
