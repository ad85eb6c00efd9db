package app

import (
	"context"
	"log/slog"

	"github.com/atomicstack/feedterm/internal/screen"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/widget"
)

// messageSink turns info and error log records into on-screen message boxes.
// It may be called from any goroutine, including with the exclusion lock held,
// so it only queues window requests and never adds windows itself.
type messageSink struct {
	screen  *screen.Screen
	vars    state.Vars
	release func()
}

func newMessageSink(s *screen.Screen, vars state.Vars, release func()) *messageSink {
	return &messageSink{screen: s, vars: vars, release: release}
}

func (m *messageSink) Enabled(_ context.Context, level slog.Level) bool {
	return level == slog.LevelInfo || level == slog.LevelError
}

func (m *messageSink) Handle(_ context.Context, r slog.Record) error {
	kind, name := widget.InfoBoxName, state.InfoMsg
	if r.Level >= slog.LevelError {
		kind, name = widget.ErrorBoxName, state.ErrorMsg
	}
	m.vars.Append(name, r.Message)
	if m.screen.HasKind(kind) {
		m.vars.Set(state.NeedsRefresh, true)
	} else {
		m.screen.Request(kind)
	}
	m.release()
	return nil
}

func (m *messageSink) WithAttrs([]slog.Attr) slog.Handler { return m }
func (m *messageSink) WithGroup(string) slog.Handler      { return m }
