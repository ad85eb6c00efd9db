package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.records))
	for _, r := range h.records {
		out = append(out, r.Message)
	}
	return out
}

func TestLevelsWriteToOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(true)
	t.Cleanup(func() {
		SetDebug(false)
		Close()
	})

	Debug("debug %d", 1)
	Info("info %s", "two")
	Errorf("error %s", "three")

	out := buf.String()
	for _, want := range []string{"debug 1", "info two", "error three"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(false)
	t.Cleanup(Close)

	Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("debug output should be suppressed, got %q", buf.String())
	}
}

func TestSinkReceivesInfoAndErrorOnly(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(true)
	rec := &recordingHandler{}
	AttachSink(rec)
	t.Cleanup(func() {
		DetachSink()
		SetDebug(false)
		Close()
	})

	Debug("dbg")
	Info("hello")
	Warn("careful")
	Errorf("broken")

	got := rec.messages()
	if len(got) != 2 || got[0] != "hello" || got[1] != "broken" {
		t.Fatalf("unexpected sink records: %v", got)
	}

	DetachSink()
	Info("after detach")
	if len(rec.messages()) != 2 {
		t.Fatalf("detached sink should not receive records")
	}
}

func TestErrorIgnoresNil(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(Close)

	Error(nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error, got %q", buf.String())
	}
}

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("window.add", map[string]interface{}{"name": "taglist"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("decode trace: %v (%q)", err, data)
	}
	if entry.Event != "window.add" || entry.Payload["name"] != "taglist" {
		t.Fatalf("unexpected trace entry: %#v", entry)
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { Configure("") })

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no trace file, stat err=%v", err)
	}
}

func TestComponentLoggerTagsRecordsAndReachesSink(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	rec := &recordingHandler{}
	AttachSink(rec)
	t.Cleanup(func() {
		DetachSink()
		Close()
	})

	Component("render").Error("render sync: boom")

	if !strings.Contains(buf.String(), "component=render") {
		t.Fatalf("expected component attribute, got %q", buf.String())
	}
	if got := rec.messages(); len(got) != 1 || got[0] != "render sync: boom" {
		t.Fatalf("unexpected sink records: %v", got)
	}
}
