package main

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/feedterm/internal/app"
	"github.com/atomicstack/feedterm/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			OptionsPath:  "feedterm.yaml",
			Layout:       "vstack",
			Feeds:        []string{"news.txt"},
			Tick:         time.Second,
			SyncInterval: 3,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"options":       "feedterm.yaml",
			"layout":        "vstack",
			"feed":          "news.txt",
			"sync-interval": "3",
		},
		Args: []string{"--layout", "vstack"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["layout"] != "vstack" {
		t.Fatalf("expected layout flag vstack, got %v", flagsValue["layout"])
	}
	if flagsValue["feed"] != "news.txt" {
		t.Fatalf("expected feed flag news.txt, got %v", flagsValue["feed"])
	}
	if flagsValue["sync-interval"] != "3" {
		t.Fatalf("expected sync-interval 3, got %v", flagsValue["sync-interval"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if !reflect.DeepEqual(cfgValue.App, cfg.App) {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestRootCommandRejectsMissingFeed(t *testing.T) {
	cmd := newRootCommand(nil)
	cmd.SetArgs([]string{"--feed", filepath.Join(t.TempDir(), "missing.txt")})
	cmd.SetOut(new(discard))
	err := cmd.Execute()
	if !errors.Is(err, errConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRootCommandRejectsBadLayout(t *testing.T) {
	cmd := newRootCommand([]string{"FEEDTERM_LAYOUT=diagonal"})
	cmd.SetArgs(nil)
	err := cmd.Execute()
	if !errors.Is(err, errConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRootCommandRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCommand(nil)
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(new(discard))
	cmd.SetErr(new(discard))
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
