package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "feedterm.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logFile      *os.File
	levelVar     = new(slog.LevelVar)
	logger       *slog.Logger
	sink         slog.Handler
)

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetDebug toggles debug level output.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
		return
	}
	levelVar.Set(slog.LevelInfo)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// SetOutput replaces the log destination with w. Tests use it to capture
// output without touching the file system.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	logger = slog.New(&teeHandler{
		file: slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}),
	})
}

// Close releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
}

func closeFileLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = nil
}

func ensureLoggerLocked() *slog.Logger {
	if logger != nil {
		return logger
	}
	var w io.Writer = io.Discard
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
	} else {
		logFile = f
		w = f
	}
	logger = slog.New(&teeHandler{
		file: slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}),
	})
	return logger
}

// Logger returns the shared structured logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return ensureLoggerLocked()
}

// Component returns a logger with the component attribute attached.
func Component(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}

func logf(level slog.Level, format string, args ...interface{}) {
	l := Logger()
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message.
func Debug(format string, args ...interface{}) { logf(slog.LevelDebug, format, args...) }

// Info writes an info message. Info records also reach the attached sink.
func Info(format string, args ...interface{}) { logf(slog.LevelInfo, format, args...) }

// Warn writes a warning message.
func Warn(format string, args ...interface{}) { logf(slog.LevelWarn, format, args...) }

// Errorf writes an error message. Error records also reach the attached sink.
func Errorf(format string, args ...interface{}) { logf(slog.LevelError, format, args...) }

// Error writes err at error level. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	Errorf("%v", err)
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	path := logPath
	mu.Unlock()
	if !enabled {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}
