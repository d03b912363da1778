// Package cli implements the filmina command-line interface.
//
// The commands render the charts of a study, compose them onto a drawing
// surface, export slide decks and manage the local study store and the
// artifact cache. The CLI is built with cobra; terminal output is styled
// with lipgloss and diagnostics go through charmbracelet/log.
//
// # Commands
//
//   - chart, layout: render a chart or print its geometry
//   - preview: draw the live-edit preview, optionally watching the inputs
//   - compose: insert charts onto a surface and flatten it
//   - deck: export the 1280×720 slide deck as PDF or PNG pages
//   - study: list, show, create, import, export, duplicate, delete
//   - cache: clear or locate the artifact cache
//
// # Logging
//
// --verbose (-v) enables debug logging. Loggers travel through
// context.Context so pipeline stages log with the command's logger.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled records with a short wall-clock stamp
// ("14:32:01.45") to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a multi-stage command. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newProgress(l *log.Logger) *progress {
	now := time.Now()
	return &progress{logger: l, start: now, last: now}
}

// step debug-logs a finished stage with the time since the previous one.
func (p *progress) step(stage string) {
	now := time.Now()
	p.logger.Debug("stage done", "stage", stage, "took", now.Sub(p.last).Round(time.Millisecond))
	p.last = now
}

// done logs msg with the total elapsed time, as "Composed 4 objects (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx; the root command does this for every
// subcommand.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached with withLogger, or
// log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
