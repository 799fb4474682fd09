package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quadart/pkg/pipeline"
	"github.com/matzehuels/quadart/pkg/quadtree"
)

// histogramBarWidth is the width of the longest bar in the depth table.
const histogramBarWidth = 30

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "inspect <image|url>",
		Short: "Print decomposition statistics without writing output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.PipelineOptions()
			flags.apply(cmd.Flags(), &opts)
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}
	flags.registerDecompose(cmd.Flags())
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	data, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	start := time.Now()
	res, src, err := runner.Inspect(ctx, data, opts)
	if err != nil {
		return err
	}
	logElapsed(loggerFromContext(ctx), start, "Decomposed", "input", input, "leaves", len(res.Leaves))

	area := src.Width() * src.Height()
	printKeyValue("Size", fmt.Sprintf("%dx%d", src.Width(), src.Height()))
	printKeyValue("Leaves", fmt.Sprintf("%d", len(res.Leaves)))
	printKeyValue("Max depth", fmt.Sprintf("%d", res.MaxDepth))
	printKeyValue("Processed", fmt.Sprintf("%d regions", res.Processed))
	printKeyValue("Coverage", fmt.Sprintf("%.1f%%", 100*float64(res.Coverage())/float64(area)))
	printNewline()
	fmt.Fprintln(stdout, depthTable(res))

	if res.Truncated {
		printWarning("Leaf limit reached (%d); raise --max-leaves to cover the whole image", opts.MaxLeaves)
	}
	return nil
}

// depthRow is one line of the depth histogram.
type depthRow struct {
	depth  int
	leaves int
	share  float64 // fraction of all leaves
}

// depthRows orders the leaf histogram by depth.
func depthRows(res *quadtree.Result) []depthRow {
	hist := res.DepthHistogram()
	rows := make([]depthRow, 0, len(hist))
	for d, n := range hist {
		rows = append(rows, depthRow{depth: d, leaves: n, share: float64(n) / float64(len(res.Leaves))})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].depth < rows[j].depth })
	return rows
}

// depthTable renders the per-depth leaf counts as a table with bars scaled
// to the most populated depth.
func depthTable(res *quadtree.Result) string {
	rows := depthRows(res)
	most := 0
	for _, r := range rows {
		most = max(most, r.leaves)
	}

	cells := make([][]string, len(rows))
	for i, r := range rows {
		bar := 0
		if most > 0 {
			bar = max(1, r.leaves*histogramBarWidth/most)
		}
		cells[i] = []string{
			fmt.Sprintf("%d", r.depth),
			fmt.Sprintf("%d", r.leaves),
			fmt.Sprintf("%5.1f%%", 100*r.share),
			strings.Repeat("█", bar),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Depth", "Leaves", "Share", "").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 3:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite).Align(lipgloss.Right)
			}
		}).
		Render()
}
