package pipeline

import (
	"testing"

	"github.com/matzehuels/quadart/pkg/errors"
	"github.com/matzehuels/quadart/pkg/quadtree"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"jpg", false},
		{"jpeg", false},
		{"SVG", false},
		{"json", false},
		{"tree", false},
		{"tif", false},
		{"pdf", true},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out.png", FormatPNG, false},
		{"dir/out.JPEG", FormatJPEG, false},
		{"out.svg", FormatSVG, false},
		{"out.json", FormatJSON, false},
		{"out.tif", FormatTIFF, false},
		{"out", "", true},
		{"out.tree", "", true},
		{"out.pdf", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatPNG:  "image/png",
		FormatJPEG: "image/jpeg",
		FormatSVG:  "image/svg+xml",
		FormatTree: "image/svg+xml",
		FormatJSON: "application/json",
		"bogus":    "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
	if !IsRaster(FormatGIF) || IsRaster(FormatSVG) {
		t.Error("IsRaster misclassifies formats")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	cfg, err := opts.DecomposeConfig()
	if err != nil {
		t.Fatalf("DecomposeConfig: %v", err)
	}
	if cfg != quadtree.DefaultConfig() {
		t.Errorf("DecomposeConfig = %+v, want %+v", cfg, quadtree.DefaultConfig())
	}
	if opts.Format != FormatPNG || opts.Outline != "#000000" {
		t.Errorf("render defaults = %q %q", opts.Format, opts.Outline)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.MaxLeaves != quadtree.DefaultMaxLeaves {
		t.Errorf("MaxLeaves = %d", opts.MaxLeaves)
	}
	if opts.Metric != "euclidean" || opts.Format != FormatPNG || opts.Outline != "#000000" {
		t.Errorf("defaults = %+v", opts)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	// Zero thresholds are meaningful and kept.
	if opts.MaxDepth != 0 || opts.ColorThreshold != 0 || opts.SizeThreshold != 0 {
		t.Errorf("thresholds overwritten: %+v", opts)
	}

	tree := Options{Format: "TREE"}
	tree.SetDefaults()
	if tree.Format != FormatTree || tree.TreeDepth != DefaultTreeDepth {
		t.Errorf("tree defaults = %q depth %d", tree.Format, tree.TreeDepth)
	}

	plain := Options{NoOutline: true}
	plain.SetDefaults()
	if plain.Outline != "" {
		t.Errorf("Outline = %q with NoOutline", plain.Outline)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"negative depth", func(o *Options) { o.MaxDepth = -1 }, errors.ErrCodeInvalidInput},
		{"negative threshold", func(o *Options) { o.ColorThreshold = -0.5 }, errors.ErrCodeInvalidInput},
		{"zero leaves", func(o *Options) { o.MaxLeaves = 0 }, errors.ErrCodeInvalidInput},
		{"bad metric", func(o *Options) { o.Metric = "cie76" }, errors.ErrCodeInvalidInput},
		{"bad format", func(o *Options) { o.Format = "pdf" }, errors.ErrCodeInvalidFormat},
		{"bad outline", func(o *Options) { o.Outline = "black" }, errors.ErrCodeInvalidInput},
		{"negative max side", func(o *Options) { o.MaxSide = -1 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}

	// A bad outline is irrelevant when outlines are off.
	opts := DefaultOptions()
	opts.Outline = "black"
	opts.NoOutline = true
	if err := opts.Validate(); err != nil {
		t.Errorf("Validate with NoOutline: %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := DefaultOptions()
	k := opts.ArtifactKeyOpts()
	if k.Outline != "#000000" || k.Format != FormatPNG || k.MaxDepth != 7 {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}

	opts.NoOutline = true
	if k := opts.ArtifactKeyOpts(); k.Outline != "" {
		t.Errorf("Outline = %q with NoOutline", k.Outline)
	}

	a, b := DefaultOptions(), DefaultOptions()
	a.Format, b.Format = FormatTree, FormatTree
	a.TreeDepth, b.TreeDepth = 2, 3
	if a.ArtifactKeyOpts() == b.ArtifactKeyOpts() {
		t.Error("tree depth should affect the artifact key")
	}
}
