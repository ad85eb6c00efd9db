// Package widget has the small regions feedterm ships with: the item list,
// the status line, the command input and the message boxes.
package widget

import (
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/feedterm/internal/command"
	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/screen"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/terminal"
)

// Option names.
const (
	ListName     = "taglist"
	StatusName   = "status"
	InputName    = "input"
	InfoBoxName  = "infobox"
	ErrorBoxName = "errorbox"
)

// region carries what every widget shares: its command set and the surface
// and host it was last bound to.
type region struct {
	*command.Set
	surface *terminal.Surface
	host    screen.Host
}

func newRegion(name string, opts options.Accessor) region {
	var keys map[string]string
	if opts != nil {
		keys = opts.KeyBindings(name)
	}
	return region{Set: command.NewSet(name, keys)}
}

func (r *region) bind(s *terminal.Surface, h screen.Host) {
	r.surface, r.host = s, h
}

func (r *region) IsInput() bool { return false }

// changed asks for a refresh on the next render pass.
func (r *region) changed() {
	if r.host == nil {
		return
	}
	r.host.Vars().Set(state.NeedsRefresh, true)
}

// clip shortens text to width cells, marking the cut with an ellipsis.
func clip(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
