package widget

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/screen"
	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/theme"
)

// StatusVar is a free-form shared variable shown at the right of the status
// line.
const StatusVar = "status_msg"

// Status is a one line summary of what is loaded.
type Status struct {
	region
	mu sync.Mutex
}

func NewStatus(opts options.Accessor) *Status {
	return &Status{region: newRegion(StatusName, opts)}
}

func (s *Status) Height(avail int) int { return min(avail, 1) }
func (s *Status) Width(avail int) int  { return avail }

func (s *Status) Init(surface *terminal.Surface, h screen.Host) {
	s.mu.Lock()
	s.bind(surface, h)
	s.mu.Unlock()
}

func (s *Status) Refresh() { s.draw() }
func (s *Status) Redraw()  { s.draw() }

// Text returns what the status line shows.
func (s *Status) Text() (left, right string) {
	s.mu.Lock()
	h := s.host
	s.mu.Unlock()
	if h == nil {
		return "", ""
	}
	items := h.Items()
	sources := items.Sources()
	left = fmt.Sprintf("feedterm  %d items", len(items.Entries()))
	if len(sources) > 0 {
		left += "  [" + strings.Join(sources, ", ") + "]"
	}
	return left, h.Vars().String(StatusVar)
}

func (s *Status) draw() {
	left, right := s.Text()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.host == nil {
		return
	}
	_, width := s.surface.Size()
	style := theme.Cell(s.host.Styles().Status)
	s.surface.ClearLine(0, style)
	used := s.surface.Print(0, 1, clip(left, width-1), style)
	if right == "" {
		return
	}
	room := width - used - 3
	right = clip(right, room)
	if right == "" {
		return
	}
	s.surface.Print(0, width-runewidth.StringWidth(right)-1, right, style)
}
