package backend

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/feedterm/internal/state"
)

// MinSyncInterval keeps a source from being fetched more than once per
// interval, however often syncs are requested.
const MinSyncInterval = 250 * time.Millisecond

// Source is a tracked data source.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]state.Item, error)
}

// Event carries the result of fetching one source.
type Event struct {
	Source string
	Items  []state.Item
	Err    error
}

type tracked struct {
	source   Source
	throttle *throttle
}

// Sources is the set of tracked data sources.
type Sources struct {
	mu      sync.RWMutex
	tracked []tracked
	minWait time.Duration
}

func NewSources(srcs ...Source) *Sources {
	s := &Sources{minWait: MinSyncInterval}
	for _, src := range srcs {
		s.Add(src)
	}
	return s
}

// Add starts tracking src.
func (s *Sources) Add(src Source) {
	s.mu.Lock()
	s.tracked = append(s.tracked, tracked{source: src, throttle: newThrottle(s.minWait)})
	s.mu.Unlock()
}

// Names lists tracked sources in the order they were added.
func (s *Sources) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.tracked))
	for _, t := range s.tracked {
		out = append(out, t.source.Name())
	}
	return out
}

// Sync fetches every source that is not throttled, in order.
func (s *Sources) Sync(ctx context.Context) []Event {
	s.mu.RLock()
	list := append([]tracked(nil), s.tracked...)
	s.mu.RUnlock()

	var out []Event
	for _, t := range list {
		if ctx.Err() != nil {
			break
		}
		if !t.throttle.allow() {
			continue
		}
		items, err := t.source.Fetch(ctx)
		out = append(out, Event{Source: t.source.Name(), Items: items, Err: err})
	}
	return out
}

// FileSource reads one item per line from a file. Blank lines and lines
// starting with '#' are skipped.
type FileSource struct {
	path string
	name string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, name: filepath.Base(path)}
}

func (f *FileSource) Name() string { return f.name }

func (f *FileSource) Fetch(ctx context.Context) ([]state.Item, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", f.name, err)
	}
	defer file.Close()

	var items []state.Item
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		items = append(items, state.Item{
			ID:     fmt.Sprintf("%s:%d", f.name, line),
			Label:  text,
			Source: f.name,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source %s: %w", f.name, err)
	}
	return items, nil
}
