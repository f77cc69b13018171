package subdiv

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for subdiv and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// SetLogger is safe for concurrent use.
//
// Log levels used by subdiv:
//   - [slog.LevelDebug]: dispatch sizes, pipeline creation, chunking
//   - [slog.LevelInfo]: accelerator lifecycle (adapter selected, ready)
//   - [slog.LevelWarn]: CPU fallback after an accelerator error
//
// Example:
//
//	subdiv.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	if a := Accelerator(); a != nil {
		propagateLogger(a, l)
	}
}

// Logger returns the current logger. Sub-packages call this to share the
// same configuration without an import cycle.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by accelerators that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

func propagateLogger(a MapAccelerator, l *slog.Logger) {
	if ls, ok := a.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
