// Command quadart renders images as quadtree art. See internal/cli for the
// command tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/quadart/internal/cli"
	qerrors "github.com/matzehuels/quadart/pkg/errors"
)

const exitInterrupted = 130

var errLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167")).Render("error:")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command tree and maps the outcome to an exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := cli.New(stderr, log.InfoLevel).RootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	msg := qerrors.UserMessage(err)
	if code := qerrors.GetCode(err); code != "" {
		msg += fmt.Sprintf(" (%s)", code)
	}
	fmt.Fprintln(stderr, errLabel, msg)
	return 1
}
