package options

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreFlattened(t *testing.T) {
	o := New()
	if got := o.String(Layout); got != "default" {
		t.Fatalf("expected default layout, got %q", got)
	}
	if got := o.Int(SyncInterval); got != 5 {
		t.Fatalf("expected sync interval 5, got %d", got)
	}
	if !o.Floating("infobox") {
		t.Fatalf("infobox should float by default")
	}
	if got := o.Align("status"); got != "bottom" {
		t.Fatalf("expected status aligned bottom, got %q", got)
	}
	if got := o.KeyBindings("main")["q"]; got != "quit" {
		t.Fatalf("expected q bound to quit, got %q", got)
	}
}

func TestUnsetNumericOptionsAreZero(t *testing.T) {
	o := New()
	if got := o.MaxWidth("taglist"); got != 0 {
		t.Fatalf("expected unbounded taglist width, got %d", got)
	}
	if got := o.Int("nope.maxheight"); got != 0 {
		t.Fatalf("expected 0 for unknown key, got %d", got)
	}
}

func TestMergeOverlaysYAML(t *testing.T) {
	o := New()
	err := o.Merge([]byte(`
layout: vstack
taglist:
  maxwidth: 40
  align: left
  keys:
    n: cursor down
reader:
  float: "true"
`))
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := o.String(Layout); got != "vstack" {
		t.Fatalf("expected vstack, got %q", got)
	}
	if got := o.MaxWidth("taglist"); got != 40 {
		t.Fatalf("expected maxwidth 40, got %d", got)
	}
	if got := o.Align("taglist"); got != "left" {
		t.Fatalf("expected left, got %q", got)
	}
	keys := o.KeyBindings("taglist")
	if keys["n"] != "cursor down" || keys["j"] != "cursor down" {
		t.Fatalf("expected merged key bindings, got %v", keys)
	}
	if !o.Floating("reader") {
		t.Fatalf("string booleans should parse")
	}
}

func TestMergeRejectsInvalidYAML(t *testing.T) {
	if err := New().Merge([]byte("layout: [unterminated")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	o, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.String(Layout) != "default" {
		t.Fatalf("expected defaults")
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("sync_interval: 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	o, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := o.Int(SyncInterval); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
