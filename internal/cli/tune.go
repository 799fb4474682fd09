package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quadart/pkg/pipeline"
	"github.com/matzehuels/quadart/pkg/quadtree"
)

// Tune styles
var (
	tuneSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuneNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	tuneDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuneCommand creates the tune command.
func (c *CLI) tuneCommand() *cobra.Command {
	var (
		flags  optionFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "tune <image|url>",
		Short: "Adjust thresholds interactively, then render",
		Long: `Tune shows the leaf count for the current color threshold and max depth
and recomputes it as you change them. Press enter to render with the
chosen settings, q to quit without writing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.config.PipelineOptions()
			flags.apply(cmd.Flags(), &opts)
			f, out, err := resolveOutput(format, output)
			if err != nil {
				return err
			}
			opts.Format = f
			return c.runTune(cmd.Context(), args[0], out, opts)
		},
	}

	flags.registerDecompose(cmd.Flags())
	flags.registerOutline(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default output.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: png, jpg, gif, tiff, bmp, svg, json, tree")
	return cmd
}

func (c *CLI) runTune(ctx context.Context, input, output string, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	data, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	src, err := pipeline.Decode(data, opts.MaxSide)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(newTuneModel(ctx, src, opts), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	m := final.(tuneModel)
	if !m.Confirmed {
		printInfo("Nothing written")
		return nil
	}

	opts = m.Opts
	opts.Source = input
	opts.Logger = loggerFromContext(ctx)
	res, err := runner.Execute(ctx, data, opts)
	if err != nil {
		return err
	}
	return writeResult(output, res, opts)
}

// =============================================================================
// tuneModel - Interactive threshold tuning
// =============================================================================

// Tunable fields, in display order.
const (
	fieldColorThreshold = iota
	fieldMaxDepth
	fieldCount
)

// colorThresholdStep is the change per key press; shift moves ten steps.
const colorThresholdStep = 1.0

// tuneResultMsg carries a finished decomposition back to the model.
type tuneResultMsg struct {
	gen       int
	leaves    int
	maxDepth  int
	truncated bool
	err       error
}

// tuneModel is the bubbletea model behind `quadart tune`. Every change
// cancels the running decomposition and starts a new one; results from
// superseded runs are dropped.
type tuneModel struct {
	ctx context.Context
	src quadtree.PixelSource

	// runCtx is the child of ctx the latest decomposition runs under.
	runCtx context.Context
	cancel context.CancelFunc

	Opts      pipeline.Options
	Cursor    int
	Confirmed bool

	gen       int
	pending   bool
	leaves    int
	maxDepth  int
	truncated bool
	err       error
}

func newTuneModel(ctx context.Context, src quadtree.PixelSource, opts pipeline.Options) tuneModel {
	opts.SetDefaults()
	m := tuneModel{ctx: ctx, src: src, Opts: opts, pending: true}
	m.restart()
	return m
}

// restart cancels the previous run and derives a fresh context for the next.
func (m *tuneModel) restart() {
	if m.cancel != nil {
		m.cancel()
	}
	m.runCtx, m.cancel = context.WithCancel(m.ctx)
}

// stop cancels the latest run, if any.
func (m tuneModel) stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m tuneModel) Init() tea.Cmd {
	return m.decompose()
}

// decompose runs the current settings off the UI goroutine.
func (m tuneModel) decompose() tea.Cmd {
	ctx, src, opts, gen := m.runCtx, m.src, m.Opts, m.gen
	opts.Format = pipeline.FormatJSON // the tree is never needed here
	return func() tea.Msg {
		res, err := pipeline.Decompose(ctx, src, opts, nil)
		if err != nil {
			return tuneResultMsg{gen: gen, err: err}
		}
		return tuneResultMsg{gen: gen, leaves: len(res.Leaves), maxDepth: res.MaxDepth, truncated: res.Truncated}
	}
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tuneResultMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.pending = false
		m.leaves, m.maxDepth, m.truncated, m.err = msg.leaves, msg.maxDepth, msg.truncated, msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		case "up", "k":
			m.Cursor = (m.Cursor + fieldCount - 1) % fieldCount
		case "down", "j":
			m.Cursor = (m.Cursor + 1) % fieldCount
		case "right", "l", "+":
			return m.adjust(1)
		case "left", "h", "-":
			return m.adjust(-1)
		case "shift+right", "L":
			return m.adjust(10)
		case "shift+left", "H":
			return m.adjust(-10)
		case "enter":
			if m.err != nil {
				return m, nil
			}
			m.stop()
			m.Confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// adjust moves the selected field by steps and restarts the decomposition.
func (m tuneModel) adjust(steps int) (tea.Model, tea.Cmd) {
	switch m.Cursor {
	case fieldColorThreshold:
		m.Opts.ColorThreshold = max(0, m.Opts.ColorThreshold+float64(steps)*colorThresholdStep)
	case fieldMaxDepth:
		// Depth moves one level per press, with or without shift.
		if steps > 0 {
			m.Opts.MaxDepth++
		} else if m.Opts.MaxDepth > 0 {
			m.Opts.MaxDepth--
		}
	}
	m.gen++
	m.pending = true
	m.restart()
	return m, m.decompose()
}

func (m tuneModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tune Decomposition"))
	b.WriteString("\n")
	b.WriteString(tuneDimStyle.Render("↑/↓ select  ←/→ adjust (shift ×10)  ⏎ render  q quit"))
	b.WriteString("\n\n")

	fields := []struct{ name, value string }{
		{"Color threshold", fmt.Sprintf("%.1f", m.Opts.ColorThreshold)},
		{"Max depth", fmt.Sprintf("%d", m.Opts.MaxDepth)},
	}
	for i, f := range fields {
		line := fmt.Sprintf("%-16s %8s", f.name, f.value)
		if i == m.Cursor {
			b.WriteString(tuneSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(tuneNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.pending:
		b.WriteString(tuneDimStyle.Render("  computing..."))
	default:
		b.WriteString(fmt.Sprintf("  %s leaves · depth %d",
			StyleNumber.Render(fmt.Sprintf("%d", m.leaves)), m.maxDepth))
		if m.truncated {
			b.WriteString("  " + StyleWarning.Render("leaf limit reached"))
		}
	}
	b.WriteString("\n")

	return b.String()
}
