package widget

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/feedterm/internal/format/table"
	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/screen"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/theme"
)

// List is the primary listing. It shows the item store, optionally narrowed
// by a fuzzy filter, with one selected row.
type List struct {
	region

	mu      sync.Mutex
	visible []state.Item
	rows    []string
	version uint64
	loaded  bool
	filter  string
	cursor  int
	offset  int
}

func NewList(opts options.Accessor) *List {
	l := &List{region: newRegion(ListName, opts)}
	l.Handle("cursor", l.cmdCursor)
	l.Handle("filter", l.cmdFilter)
	return l
}

func (l *List) Height(avail int) int { return avail }
func (l *List) Width(avail int) int  { return avail }

func (l *List) Init(s *terminal.Surface, h screen.Host) {
	l.mu.Lock()
	l.bind(s, h)
	l.mu.Unlock()
}

func (l *List) Refresh() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reload(false)
	l.draw()
}

func (l *List) Redraw() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.surface.Clear()
	l.reload(true)
	l.draw()
}

// Selected returns the item under the cursor.
func (l *List) Selected() (state.Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reload(false)
	if l.cursor < 0 || l.cursor >= len(l.visible) {
		return state.Item{}, false
	}
	return l.visible[l.cursor], true
}

func (l *List) cmdCursor(args string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reload(false)
	height, _ := l.surface.Size()
	switch strings.TrimSpace(args) {
	case "up":
		l.cursor--
	case "down":
		l.cursor++
	case "top":
		l.cursor = 0
	case "bottom":
		l.cursor = len(l.visible) - 1
	case "pageup":
		l.cursor -= max(height, 1)
	case "pagedown":
		l.cursor += max(height, 1)
	default:
		return fmt.Errorf("cursor: unknown direction %q", args)
	}
	l.clampCursor()
	l.changed()
	return nil
}

func (l *List) cmdFilter(args string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = strings.TrimSpace(args)
	l.cursor, l.offset = 0, 0
	l.reload(true)
	l.changed()
	return nil
}

// reload re-reads the item store when it changed since the last read.
func (l *List) reload(force bool) {
	if l.host == nil {
		return
	}
	store := l.host.Items()
	version := store.Version()
	if l.loaded && !force && version == l.version {
		return
	}
	l.visible = filterItems(store.Entries(), l.filter)
	l.rows = listRows(l.visible, len(store.Sources()) > 1)
	l.version = version
	l.loaded = true
	l.clampCursor()
}

func (l *List) clampCursor() {
	if l.cursor >= len(l.visible) {
		l.cursor = len(l.visible) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *List) draw() {
	if l.host == nil {
		return
	}
	height, width := l.surface.Size()
	if height <= 0 || width <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}

	styles := l.host.Styles()
	item := theme.Cell(styles.Item)
	selected := theme.Cell(styles.SelectedItem)
	if len(l.visible) == 0 {
		l.surface.ClearLine(0, item)
		msg := "no items"
		if l.filter != "" {
			msg = fmt.Sprintf("no items match %q", l.filter)
		}
		l.surface.Print(0, 1, clip(msg, width-1), item)
		for y := 1; y < height; y++ {
			l.surface.ClearLine(y, item)
		}
		return
	}
	for y := 0; y < height; y++ {
		idx := l.offset + y
		if idx >= len(l.visible) {
			l.surface.ClearLine(y, item)
			continue
		}
		style := item
		if idx == l.cursor {
			style = selected
		}
		l.surface.ClearLine(y, style)
		l.surface.Print(y, 1, clip(l.rows[idx], width-1), style)
	}
}

// listRows renders one line per item, adding a source column when items
// come from several sources.
func listRows(items []state.Item, withSource bool) []string {
	if !withSource {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Label
		}
		return out
	}
	cells := make([][]string, len(items))
	for i, it := range items {
		cells[i] = []string{it.Label, it.Source}
	}
	return table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight})
}

// filterItems keeps the items whose labels fuzzy-match query, in store order.
func filterItems(items []state.Item, query string) []state.Item {
	if query == "" {
		return append([]state.Item(nil), items...)
	}
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}
	matches := make(map[int]struct{})
	for _, rank := range fuzzy.RankFindNormalizedFold(query, labels) {
		matches[rank.OriginalIndex] = struct{}{}
	}
	out := make([]state.Item, 0, len(matches))
	for i, it := range items {
		if _, ok := matches[i]; ok {
			out = append(out, it)
		}
	}
	return out
}
