// Package screen owns the live set of regions: it classifies them as tiled or
// floating, lays them out, binds them to terminal surfaces and tracks focus.
package screen

import (
	"context"

	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/theme"
)

// Region is a logical screen unit. Concrete widgets implement it.
type Region interface {
	// Name is the option name, e.g. "taglist".
	Name() string
	Height(avail int) int
	Width(avail int) int
	// Init hands the region its surface. It is called again after every
	// relayout, with a freshly sized surface.
	Init(surface *terminal.Surface, host Host)
	Refresh()
	Redraw()
	Key(key string) (string, bool)
	Command(cmd string) bool
	IsInput() bool
}

// InputRegion captures keystrokes while a sub-edit is active.
type InputRegion interface {
	Region
	Edit(prompt string)
	// AddKey returns false once the input is complete.
	AddKey(key terminal.Key) bool
	Result() string
	Reset()
}

// Host is the capability set a region gets from the screen.
type Host interface {
	Options() options.Accessor
	Vars() state.Vars
	Items() state.ItemStore
	Styles() *theme.Styles
	// Refresh flushes pending drawing to the terminal.
	Refresh()
	// Release wakes the render coordinator.
	Release()
	// AddWindow creates a sibling region of the given kind.
	AddWindow(kind string) error
	// Die removes the calling region.
	Die()
	// Prompt runs a sub-edit on the input region and returns the line typed.
	Prompt(ctx context.Context, prompt string) (string, error)
	// Pause surrenders the terminal until Unpause.
	Pause()
	Unpause()
}

// Factory builds a region of one kind.
type Factory func() Region

// Services are the collaborators the screen passes on to its regions.
type Services struct {
	Options *options.Options
	Vars    state.Vars
	Items   state.ItemStore
	Styles  *theme.Styles
	Release func()
	Prompt  func(ctx context.Context, prompt string) (string, error)
	Pause   func()
	Unpause func()
}

type host struct {
	screen *Screen
	win    *window
}

func (h *host) Options() options.Accessor { return h.screen.svc.Options }
func (h *host) Vars() state.Vars           { return h.screen.svc.Vars }
func (h *host) Items() state.ItemStore     { return h.screen.svc.Items }
func (h *host) Styles() *theme.Styles      { return h.screen.svc.Styles }
func (h *host) Refresh()                   { h.screen.term.Show() }
func (h *host) Release()                   { h.screen.svc.Release() }

func (h *host) AddWindow(kind string) error {
	return h.screen.AddKind(kind)
}

func (h *host) Die() {
	h.screen.Remove(h.win.region)
}

func (h *host) Prompt(ctx context.Context, prompt string) (string, error) {
	return h.screen.svc.Prompt(ctx, prompt)
}

func (h *host) Pause()   { h.screen.svc.Pause() }
func (h *host) Unpause() { h.screen.svc.Unpause() }
