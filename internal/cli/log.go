// Package cli implements the cistercian command-line interface.
//
// Commands take an expression in text notation, such as "(2 * 3)^1' + 0'",
// and either write rendered files or show the drawing in the terminal.
// The CLI is built using cobra and logs with charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - draw: Render an expression to SVG, PNG, GIF, PDF or JSON files
//   - strokes: Print the stroke list as a table or JSON
//   - tree: Print the shape tree as Graphviz DOT or render it
//   - play: Watch expressions being drawn in the terminal
//   - serve: Run the HTTP API
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events. Loggers are passed through
// context.Context to the commands.
//
// # Example
//
//	import "github.com/algexeno/cistercian/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/algexeno/cistercian/pkg/pipeline"
)

// newLogger creates the CLI logger. Timestamps read "15:04:05.00" and the
// expression and format keys are highlighted.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	styles := log.DefaultStyles()
	styles.Keys["expression"] = lipgloss.NewStyle().Foreground(colorCyan)
	styles.Values["expression"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["formats"] = lipgloss.NewStyle().Foreground(colorCyan)
	l.SetStyles(styles)
	return l
}

// logStages logs how long each pipeline stage of result took. Cached
// renders are marked so slow runs can be told apart from cold caches.
func logStages(l *log.Logger, result *pipeline.Result, formats []string) {
	l.Debug("stage timings",
		"expression", result.Text,
		"formats", formats,
		"strokes", result.Stats.StrokeCount,
		"build", result.Stats.BuildTime.Round(time.Microsecond),
		"flatten", result.Stats.FlattenTime.Round(time.Microsecond),
		"render", result.Stats.RenderTime.Round(time.Millisecond),
		"cached", result.CacheInfo.RenderHit)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx for the commands.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
