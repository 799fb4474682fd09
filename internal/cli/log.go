// Package cli is the quadart command tree.
//
//	quadart render photo.jpg -o art.png      decompose and write an artifact
//	quadart inspect photo.jpg                leaf statistics only
//	quadart tune photo.jpg                   adjust thresholds interactively
//	quadart serve                            HTTP API
//	quadart history list | cache clear       housekeeping
//
// Settings come from built-in defaults, then the TOML config file, then
// flags actually given on the command line. The logger travels in the
// command context; --verbose lowers it to debug and also routes pipeline,
// cache and fetch events into it.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logElapsed logs msg at info level with the time since start appended
// as "took".
func logElapsed(l *log.Logger, start time.Time, msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(start).Round(time.Millisecond))
	l.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default when ctx carries none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
