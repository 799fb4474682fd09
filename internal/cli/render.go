package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quadart/pkg/imgio"
	"github.com/matzehuels/quadart/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	flags   optionFlags
	output  string // output file path
	format  string // output format; inferred from output when empty
	noCache bool   // bypass the artifact cache entirely
	refresh bool   // recompute and overwrite the cached artifact
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <image|url>",
		Short: "Render an image as quadtree art",
		Long: `Render decomposes an image into uniform regions and paints each region
with its average color.

The input may be a local file or an http(s) URL. The output format follows
the -o extension unless --format is given. Besides raster formats, "svg"
writes one rectangle per region, "json" writes the region list, and "tree"
writes a Graphviz diagram of the subdivision hierarchy.`,
		Example: `  quadart render photo.jpg
  quadart render photo.jpg -o art.svg --max-depth 9
  quadart render https://example.com/cat.png --format json -o cat.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.config.PipelineOptions()
			opts.flags.apply(cmd.Flags(), &popts)
			popts.Refresh = opts.refresh

			format, output, err := resolveOutput(opts.format, opts.output)
			if err != nil {
				return err
			}
			popts.Format = format
			return c.runRender(cmd.Context(), args[0], output, popts, opts.noCache)
		},
	}

	opts.flags.registerDecompose(cmd.Flags())
	opts.flags.registerOutline(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default output.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, jpg, gif, tiff, bmp, svg, json, tree")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and recompute")

	return cmd
}

// resolveOutput settles the format and output path from the flags. An
// explicit format wins; otherwise the output extension decides, and with
// neither the default PNG output is used.
func resolveOutput(format, output string) (string, string, error) {
	if format != "" {
		format = pipeline.NormalizeFormat(format)
		if err := pipeline.ValidateFormat(format); err != nil {
			return "", "", err
		}
		if output == "" {
			output = defaultOutput(format)
		}
		return format, output, nil
	}
	if output == "" {
		return pipeline.DefaultFormat, pipeline.DefaultOutput, nil
	}
	format, err := pipeline.FormatFromPath(output)
	if err != nil {
		return "", "", err
	}
	return format, output, nil
}

// defaultOutput names the output file for a format when -o is not given.
func defaultOutput(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return pipeline.DefaultOutput
	case pipeline.FormatTree:
		return "output.tree.svg"
	}
	base := strings.TrimSuffix(pipeline.DefaultOutput, ".png")
	return base + "." + format
}

// runRender loads input, runs the pipeline and writes the artifact.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	logger := loggerFromContext(ctx)
	logger.Debug("render", "input", input, "output", output, "format", opts.Format)

	// Reject bad options before touching the input or the network.
	opts.Logger = logger
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", input))
	spinner.Start()

	data, err := runner.Load(ctx, input)
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.Update("Decomposing...")
	opts.Source = input
	start := time.Now()
	res, err := runner.Execute(ctx, data, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	logElapsed(logger, start, "Rendered", "leaves", res.Leaves, "cache_hit", res.CacheHit)

	return writeResult(output, res, opts)
}

// writeResult saves the artifact and prints the summary.
func writeResult(output string, res *pipeline.Result, opts pipeline.Options) error {
	if err := imgio.WriteFile(output, res.Artifact); err != nil {
		return err
	}

	printSuccess("Rendered %dx%d image", res.Width, res.Height)
	printFile(output)
	printStats(res.Leaves, res.MaxDepth, res.CacheHit)
	if res.Truncated {
		printWarning("Leaf limit reached (%d); regions still queued were not painted", opts.MaxLeaves)
	}
	return nil
}
