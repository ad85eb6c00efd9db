package state

import "sync"

// Item is one entry shown by the primary listing.
type Item struct {
	ID     string
	Label  string
	Source string
}

// ItemStore holds the items produced by the last sync of every source.
type ItemStore interface {
	Entries() []Item
	SetSource(source string, items []Item)
	Sources() []string
	Version() uint64
}

type itemStore struct {
	mu      sync.RWMutex
	order   []string
	bySrc   map[string][]Item
	version uint64
}

func NewItemStore() ItemStore {
	return &itemStore{bySrc: make(map[string][]Item)}
}

// Entries returns every item, grouped by source in registration order.
func (s *itemStore) Entries() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Item
	for _, src := range s.order {
		out = append(out, s.bySrc[src]...)
	}
	return out
}

func (s *itemStore) SetSource(source string, items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bySrc[source]; !ok {
		s.order = append(s.order, source)
	}
	s.bySrc[source] = cloneItems(items)
	s.version++
}

func (s *itemStore) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Version increases on every SetSource so readers can skip unchanged data.
func (s *itemStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
