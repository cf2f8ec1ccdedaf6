// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// Live pipelines whose contexts accept a logger. Entries are weak, so a
// pipeline dropped without Release is still collected.
var (
	liveMu    sync.Mutex
	livePosts = map[weak.Pointer[Post]]struct{}{}
)

// SetLogger configures the logger for postfx and the render contexts of
// live pipelines. By default, postfx produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to disable logging
// (restore default silent behavior).
//
// Log levels used by postfx:
//   - [slog.LevelDebug]: resize, pass registration and per-frame diagnostics
//   - [slog.LevelWarn]: non-fatal issues (resource release errors)
//
// Example:
//
//	postfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	liveMu.Lock()
	defer liveMu.Unlock()
	for wp := range livePosts {
		p := wp.Value()
		if p == nil {
			delete(livePosts, wp)
			continue
		}
		if ls, ok := p.ctx.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}

// Logger returns the current logger used by postfx.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by render contexts that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// trackContext passes the current logger to ctx if it accepts one and keeps
// it informed of later SetLogger calls until untrackContext or until p is
// garbage collected.
func trackContext(p *Post, ctx any) {
	ls, ok := ctx.(loggerSetter)
	if !ok {
		return
	}
	wp := weak.Make(p)
	liveMu.Lock()
	ls.SetLogger(Logger())
	livePosts[wp] = struct{}{}
	liveMu.Unlock()
	runtime.AddCleanup(p, forget, wp)
}

func untrackContext(p *Post) {
	forget(weak.Make(p))
}

func forget(wp weak.Pointer[Post]) {
	liveMu.Lock()
	defer liveMu.Unlock()
	delete(livePosts, wp)
}
