package dispatcher

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/atomicstack/feedterm/internal/backend"
	"github.com/atomicstack/feedterm/internal/logging"
	"github.com/atomicstack/feedterm/internal/state"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestApplyUpdatesStoreAndRequestsRefresh(t *testing.T) {
	items := state.NewItemStore()
	vars := state.NewVars()
	d := New(items, vars)

	items.SetSource("b", []state.Item{{ID: "old", Label: "old", Source: "b"}})
	res := d.Apply([]backend.Event{
		{Source: "a", Items: []state.Item{{ID: "a:1", Label: "one", Source: "a"}}},
		{Source: "b", Err: errors.New("offline")},
	})

	if len(res.Updated) != 1 || res.Updated[0] != "a" {
		t.Fatalf("unexpected updated %v", res.Updated)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "b" {
		t.Fatalf("unexpected failed %v", res.Failed)
	}
	if !vars.Bool(state.NeedsRefresh) {
		t.Fatalf("expected refresh request")
	}
	entries := items.Entries()
	if len(entries) != 2 || entries[0].ID != "old" || entries[1].ID != "a:1" {
		t.Fatalf("failed source should keep old items, got %+v", entries)
	}
}

func TestApplyNothingLeavesRefreshAlone(t *testing.T) {
	vars := state.NewVars()
	d := New(state.NewItemStore(), vars)
	if res := d.Apply(nil); res.Changed() {
		t.Fatalf("empty batch reported changes")
	}
	if vars.Bool(state.NeedsRefresh) {
		t.Fatalf("empty batch requested a refresh")
	}
}
