package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Tick != time.Second {
		t.Fatalf("expected 1s tick, got %s", cfg.App.Tick)
	}
	if cfg.App.SyncInterval != 0 || cfg.App.Layout != "" || len(cfg.App.Feeds) != 0 {
		t.Fatalf("unexpected defaults: %#v", cfg.App)
	}
	if cfg.Logging.Trace || cfg.Logging.Debug {
		t.Fatalf("logging should default off: %#v", cfg.Logging)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"FEEDTERM_LAYOUT=hstack",
		"FEEDTERM_TICK=2s",
		"FEEDTERM_SYNC_INTERVAL=7",
		"FEEDTERM_DEBUG=true",
	}
	cfg, err := LoadArgs([]string{"--layout", "vstack", "--sync-interval", "3"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Layout != "vstack" {
		t.Fatalf("flag should win over env, got %q", cfg.App.Layout)
	}
	if cfg.App.SyncInterval != 3 {
		t.Fatalf("expected sync interval 3, got %d", cfg.App.SyncInterval)
	}
	if cfg.App.Tick != 2*time.Second {
		t.Fatalf("env tick should apply, got %s", cfg.App.Tick)
	}
	if !cfg.Logging.Debug {
		t.Fatalf("env debug should apply")
	}
	if cfg.Flags["layout"] != "vstack" || cfg.Flags["sync-interval"] != "3" {
		t.Fatalf("unexpected flag snapshot: %v", cfg.Flags)
	}
}

func TestFeedList(t *testing.T) {
	env := []string{"FEEDTERM_FEED=" + strings.Join([]string{"a.txt", " ", "b.txt"}, string(os.PathListSeparator))}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg.App.Feeds, []string{"a.txt", "b.txt"}) {
		t.Fatalf("unexpected env feeds: %v", cfg.App.Feeds)
	}

	cfg, err = LoadArgs([]string{"--feed", "c.txt", "--feed", "d.txt"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg.App.Feeds, []string{"c.txt", "d.txt"}) {
		t.Fatalf("flags should replace env feeds, got %v", cfg.App.Feeds)
	}
}

func TestMalformedEnvironmentFallsBack(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"FEEDTERM_TICK=soon", "FEEDTERM_SYNC_INTERVAL=x", "junk"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Tick != time.Second || cfg.App.SyncInterval != 0 {
		t.Fatalf("expected fallbacks, got %#v", cfg.App)
	}
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	cases := [][]string{
		{"--tick", "0s"},
		{"--sync-interval", "-1"},
		{"--layout", "diagonal"},
		{"--no-such-flag"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(args, nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestValidateChecksFeeds(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "news.txt")
	if err := os.WriteFile(present, []byte("item\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadArgs([]string{"--feed", present}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}

	cfg.App.Feeds = append(cfg.App.Feeds, filepath.Join(dir, "missing.txt"))
	err = Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "missing.txt") {
		t.Fatalf("expected missing feed error, got %v", err)
	}
}
