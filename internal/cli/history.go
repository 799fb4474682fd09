package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quadart/pkg/history"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear recent renders",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyClearCommand())

	return cmd
}

// historyListCommand creates the "history list" subcommand.
func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent renders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.historyStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No renders recorded yet")
				return nil
			}
			fmt.Fprintln(stdout, historyTable(records, time.Now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "number of runs to show (0 for all)")
	return cmd
}

// historyClearCommand creates the "history clear" subcommand.
func (c *CLI) historyClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.historyStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			printSuccess("History cleared")
			if fs, ok := store.(*history.FileStore); ok {
				printDetail("File: %s", fs.Path())
			}
			return nil
		},
	}
}

// historyStore opens the configured store even when recording is disabled,
// so old runs can still be listed and cleared.
func (c *CLI) historyStore(ctx context.Context) (history.Store, error) {
	if s := c.newHistory(ctx); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("history store unavailable")
}

// historyTable renders records as a table, timestamps relative to now.
func historyTable(records []history.Record, now time.Time) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		status := iconFresh
		if r.CacheHit {
			status = iconCached
		}
		if r.Truncated {
			status += " " + iconWarning
		}
		rows[i] = []string{
			formatRelativeTime(r.CreatedAt, now),
			r.Source,
			r.Format,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Leaves),
			status,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("When", "Source", "Format", "Size", "Leaves", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 || col == 5 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// formatRelativeTime describes t relative to now ("5m ago", "3d ago"),
// falling back to a date after a week.
func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
