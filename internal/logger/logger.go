// Package logger holds the structured logger shared by the viewer packages.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting altogether.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNop() *slog.Logger { return slog.New(nopHandler{}) }

// current is read from the loader goroutine as well as the event loop.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newNop())
}

// SetLogger replaces the logger used by the viewer packages.
// By default nothing is logged. Passing nil restores the silent default.
//
// Levels in use:
//   - [slog.LevelDebug]: load requests, redraws, filter runs
//   - [slog.LevelInfo]: image replaced
//   - [slog.LevelWarn]: decode failures, dropped selections
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNop()
	}
	current.Store(l)
}

// Logger returns the active logger. It never returns nil.
func Logger() *slog.Logger {
	return current.Load()
}
