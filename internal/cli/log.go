package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lbrandt/suitree/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// loggerDiagnostics forwards core diagnostics to the CLI logger. The core
// packages emit diagnostics for oddities they recover from (a leaf without
// a suitability value, an unparsable feature code); users should still see
// them.
type loggerDiagnostics struct {
	logger *log.Logger
}

func (h loggerDiagnostics) OnDiagnostic(_ context.Context, component, code, msg string, kv ...any) {
	h.logger.Warn(msg, append([]any{"component", component, "code", code}, kv...)...)
}

// InstallDiagnostics routes the diagnostics channel through the CLI logger.
// Call once during startup, before any command runs.
func (c *CLI) InstallDiagnostics() {
	observability.SetDiagnosticHooks(loggerDiagnostics{logger: c.Logger})
}
