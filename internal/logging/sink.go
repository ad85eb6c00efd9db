package logging

import (
	"context"
	"log/slog"
	"sync"
)

var sinkMu sync.RWMutex

// AttachSink routes info and error records to h in addition to the log file.
// Only one sink is attached at a time.
func AttachSink(h slog.Handler) {
	sinkMu.Lock()
	sink = h
	sinkMu.Unlock()
}

// DetachSink removes the attached sink, if any.
func DetachSink() {
	sinkMu.Lock()
	sink = nil
	sinkMu.Unlock()
}

func currentSink() slog.Handler {
	sinkMu.RLock()
	defer sinkMu.RUnlock()
	return sink
}

// teeHandler writes every record to the file handler and forwards info and
// error records to the sink.
type teeHandler struct {
	file slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if t.file.Enabled(ctx, level) {
		return true
	}
	return forwarded(level) && currentSink() != nil
}

func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if t.file.Enabled(ctx, r.Level) {
		err = t.file.Handle(ctx, r)
	}
	if s := currentSink(); s != nil && forwarded(r.Level) {
		if serr := s.Handle(ctx, r.Clone()); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{file: t.file.WithAttrs(attrs)}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{file: t.file.WithGroup(name)}
}

func forwarded(level slog.Level) bool {
	return level == slog.LevelInfo || level == slog.LevelError
}
