package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/feedterm/internal/state"
)

func TestThrottleAllowsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	th := newThrottle(time.Second)
	th.now = func() time.Time { return now }

	if !th.allow() {
		t.Fatalf("first call should be allowed")
	}
	if th.allow() {
		t.Fatalf("second call inside the interval should be refused")
	}
	now = now.Add(time.Second)
	if !th.allow() {
		t.Fatalf("call after the interval should be allowed")
	}
	if !newThrottle(0).allow() || !newThrottle(0).allow() {
		t.Fatalf("zero interval should never throttle")
	}
}

func TestTickerCallsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	tk := NewTicker(5*time.Millisecond, func() { calls.Add(1) })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tk.Run(ctx) }()

	deadline := time.Now().Add(time.Second)
	for calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("ticker fired %d times", calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("ticker did not stop")
	}
}

func TestFileSourceReadsItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "news.txt")
	content := "# subscriptions\nfirst story\n\n  second story  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	items, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []state.Item{
		{ID: "news.txt:2", Label: "first story", Source: "news.txt"},
		{ID: "news.txt:4", Label: "second story", Source: "news.txt"},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %+v", len(want), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d: expected %+v, got %+v", i, want[i], items[i])
		}
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing")).Fetch(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

type stubSource struct {
	name  string
	calls atomic.Int32
	err   error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(context.Context) ([]state.Item, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []state.Item{{ID: s.name, Label: s.name, Source: s.name}}, nil
}

func TestSourcesSyncThrottlesEachSource(t *testing.T) {
	a := &stubSource{name: "a"}
	b := &stubSource{name: "b", err: errors.New("offline")}
	srcs := NewSources(a, b)

	evts := srcs.Sync(context.Background())
	if len(evts) != 2 || evts[0].Source != "a" || evts[1].Source != "b" {
		t.Fatalf("unexpected events %+v", evts)
	}
	if evts[1].Err == nil {
		t.Fatalf("expected error event for b")
	}
	if again := srcs.Sync(context.Background()); len(again) != 0 {
		t.Fatalf("immediate resync should be throttled, got %+v", again)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Fatalf("sources fetched too often: a=%d b=%d", a.calls.Load(), b.calls.Load())
	}
	if names := srcs.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected names %v", names)
	}
}
