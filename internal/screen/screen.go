package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/atomicstack/feedterm/internal/command"
	"github.com/atomicstack/feedterm/internal/layout"
	"github.com/atomicstack/feedterm/internal/logging"
	"github.com/atomicstack/feedterm/internal/logging/events"
	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/theme"
)

// ErrFocusRange reports a focus index outside the focus chain.
var ErrFocusRange = errors.New("focus index out of range")

// ErrUnknownKind reports a window request for a kind with no factory.
var ErrUnknownKind = errors.New("unknown window kind")

// window is a live region plus its bookkeeping. It satisfies layout.Sizer so
// placements map straight back to windows.
type window struct {
	id       string
	region   Region
	floating bool
	rect     layout.Rect
}

func (w *window) Name() string         { return w.region.Name() }
func (w *window) Height(avail int) int { return w.region.Height(avail) }
func (w *window) Width(avail int) int  { return w.region.Width(avail) }

// Screen is the window tree and focus manager. Membership changes happen
// under the exclusion lock; the internal mutex only protects readers on other
// goroutines. Region methods are never called with the mutex held.
type Screen struct {
	term      *terminal.Terminal
	svc       Services
	factories map[string]Factory
	commands  *command.Set

	mu      sync.RWMutex
	tiled   []*window
	floats  []*window
	focused *window
	pending []string
}

// New creates an empty screen drawing on term.
func New(term *terminal.Terminal, svc Services) *Screen {
	if svc.Options == nil {
		svc.Options = options.New()
	}
	if svc.Vars == nil {
		svc.Vars = state.NewVars()
	}
	if svc.Items == nil {
		svc.Items = state.NewItemStore()
	}
	if svc.Styles == nil {
		svc.Styles = theme.Default()
	}
	if svc.Release == nil {
		svc.Release = func() {}
	}
	if svc.Prompt == nil {
		svc.Prompt = func(context.Context, string) (string, error) {
			return "", errors.New("no input region")
		}
	}
	if svc.Pause == nil {
		svc.Pause = func() {}
	}
	if svc.Unpause == nil {
		svc.Unpause = func() {}
	}
	s := &Screen{
		term:      term,
		svc:       svc,
		factories: make(map[string]Factory),
	}
	s.commands = s.newCommands()
	return s
}

// Register adds a factory used by AddKind and window requests.
func (s *Screen) Register(kind string, f Factory) {
	s.mu.Lock()
	s.factories[kind] = f
	s.mu.Unlock()
}

// Commands returns the screen's own command handler ("resize", "focus").
func (s *Screen) Commands() *command.Set {
	return s.commands
}

// AddKind builds a region with the factory registered for kind and adds it.
func (s *Screen) AddKind(kind string) error {
	s.mu.RLock()
	f, ok := s.factories[kind]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	s.Add(f())
	return nil
}

// Add classifies r as tiled or floating, relays out every region and focuses
// the top of the new focus chain.
func (s *Screen) Add(r Region) {
	w := &window{
		id:       uuid.NewString(),
		region:   r,
		floating: s.svc.Options.Floating(r.Name()),
	}
	s.mu.Lock()
	if w.floating {
		s.floats = append(s.floats, w)
	} else {
		s.tiled = append(s.tiled, w)
	}
	s.mu.Unlock()
	events.Window.Add(w.id, r.Name(), w.floating)
	logging.Debug("window added: %s (%s)", r.Name(), w.id)

	s.relayout()
	_ = s.focusIndex(0)
	s.term.Clear()
	s.Redraw()
}

// Remove drops r. Focus falls back to the top of the chain if r held it.
func (s *Screen) Remove(r Region) {
	s.mu.Lock()
	var removed *window
	s.tiled, removed = without(s.tiled, r, removed)
	s.floats, removed = without(s.floats, r, removed)
	wasFocused := removed != nil && s.focused == removed
	s.mu.Unlock()
	if removed == nil {
		return
	}
	events.Window.Remove(removed.id, r.Name())
	logging.Debug("window removed: %s (%s)", r.Name(), removed.id)

	s.relayout()
	if wasFocused {
		_ = s.focusIndex(0)
	}
	s.term.Clear()
	s.Redraw()
}

func without(list []*window, r Region, removed *window) ([]*window, *window) {
	out := list[:0]
	for _, w := range list {
		if w.region == r && removed == nil {
			removed = w
			continue
		}
		out = append(out, w)
	}
	return out, removed
}

// chainLocked is tiled then floats, reversed: the topmost window first.
func (s *Screen) chainLocked() []*window {
	all := make([]*window, 0, len(s.tiled)+len(s.floats))
	all = append(all, s.tiled...)
	all = append(all, s.floats...)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all
}

// FocusChain returns the live regions, topmost first.
func (s *Screen) FocusChain() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain := s.chainLocked()
	out := make([]Region, len(chain))
	for i, w := range chain {
		out[i] = w.region
	}
	return out
}

// Targets is the focus chain rotated to start at the focused region, in the
// shape the command router consumes.
func (s *Screen) Targets() []command.Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain := s.chainLocked()
	start := 0
	for i, w := range chain {
		if w == s.focused {
			start = i
			break
		}
	}
	out := make([]command.Target, 0, len(chain))
	for i := range chain {
		out = append(out, chain[(start+i)%len(chain)].region)
	}
	return out
}

// Focused returns the focused region, or nil when there are none.
func (s *Screen) Focused() Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focused == nil {
		return nil
	}
	return s.focused.region
}

// Focus selects a region by its index in the focus chain. Negative indices
// count from the end. Out of range indices leave focus where it was.
func (s *Screen) Focus(idx int) error {
	if err := s.focusIndex(idx); err != nil {
		logging.Debug("%v", err)
		return err
	}
	return nil
}

func (s *Screen) focusIndex(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chain := s.chainLocked()
	n := len(chain)
	if n == 0 {
		s.focused = nil
		return nil
	}
	if idx < -n || idx >= n {
		events.Focus.Miss(idx, n)
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrFocusRange, idx, -n, n-1)
	}
	if idx < 0 {
		idx += n
	}
	s.focused = chain[idx]
	events.Focus.Set(idx, s.focused.id, s.focused.region.Name())
	return nil
}

// InputRegion returns the first region that captures input, if any.
func (s *Screen) InputRegion() (InputRegion, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range append(append([]*window(nil), s.tiled...), s.floats...) {
		if !w.region.IsInput() {
			continue
		}
		if in, ok := w.region.(InputRegion); ok {
			return in, true
		}
	}
	return nil, false
}

// Request queues a window of kind to be added on the next ApplyPending.
// It is safe to call from any goroutine, including with the exclusion lock
// held elsewhere.
func (s *Screen) Request(kind string) {
	s.mu.Lock()
	s.pending = append(s.pending, kind)
	s.mu.Unlock()
	events.Window.Request(kind)
}

// HasKind reports whether a region named kind is live or queued.
func (s *Screen) HasKind(kind string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range s.pending {
		if k == kind {
			return true
		}
	}
	for _, w := range s.tiled {
		if w.region.Name() == kind {
			return true
		}
	}
	for _, w := range s.floats {
		if w.region.Name() == kind {
			return true
		}
	}
	return false
}

// ApplyPending adds every queued window. Callers hold the exclusion lock.
func (s *Screen) ApplyPending() error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	var errs []error
	seen := make(map[string]bool)
	for _, kind := range pending {
		if seen[kind] {
			continue
		}
		seen[kind] = true
		if err := s.AddKind(kind); err != nil {
			errs = append(errs, err)
		}
	}
	if len(pending) > 0 {
		s.Refresh()
	}
	return errors.Join(errs...)
}

// Rect returns where r was last placed.
func (s *Screen) Rect(r Region) (layout.Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range append(append([]*window(nil), s.tiled...), s.floats...) {
		if w.region == r {
			return w.rect, true
		}
	}
	return layout.Rect{}, false
}

// relayout recomputes every rectangle from scratch, then binds each region to
// a surface of its new size.
func (s *Screen) relayout() {
	s.mu.RLock()
	tiled := append([]*window(nil), s.tiled...)
	floats := append([]*window(nil), s.floats...)
	s.mu.RUnlock()

	opts := s.svc.Options
	width, height := s.term.Size()
	full := layout.Rect{Height: height, Width: width}

	sizers := make([]layout.Sizer, len(tiled))
	for i, w := range tiled {
		sizers[i] = w
	}
	root := layout.Fill(opts.String(options.Layout), sizers, opts)
	rects := make(map[*window]layout.Rect, len(tiled)+len(floats))
	for _, p := range layout.Arrange(root, full, layout.Vertical, opts) {
		rects[p.Region.(*window)] = p.Rect
	}
	for _, w := range floats {
		rects[w] = layout.PlaceFloat(w, full, opts.Align(w.Name()), opts)
	}

	s.mu.Lock()
	for w, r := range rects {
		w.rect = r
	}
	s.mu.Unlock()

	for _, w := range append(tiled, floats...) {
		r := rects[w]
		events.Window.Place(w.id, w.Name(), r.Top, r.Left, r.Height, r.Width)
		w.region.Init(s.term.Surface(r.Top, r.Left, r.Height, r.Width), &host{screen: s, win: w})
	}
}

// Refresh asks every region to update its content, tiled regions first so
// floats stay on top, then flushes the terminal.
func (s *Screen) Refresh() {
	for _, r := range s.drawOrder() {
		r.Refresh()
	}
	s.term.Show()
}

// Redraw forces every region to repaint from scratch.
func (s *Screen) Redraw() {
	for _, r := range s.drawOrder() {
		r.Redraw()
	}
	s.term.Show()
}

func (s *Screen) drawOrder() []Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Region, 0, len(s.tiled)+len(s.floats))
	for _, w := range s.tiled {
		out = append(out, w.region)
	}
	for _, w := range s.floats {
		out = append(out, w.region)
	}
	return out
}

// Resize resets the terminal, rebuilds the layout and paints everything.
// Pending resize, refresh and redraw requests are all satisfied by it.
func (s *Screen) Resize() error {
	vars := s.svc.Vars
	vars.Set(state.NeedsResize, false)
	vars.Set(state.NeedsRefresh, false)
	vars.Set(state.NeedsRedraw, false)

	if err := s.term.Reset(); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	s.relayout()
	s.Refresh()
	s.Redraw()
	return nil
}

func (s *Screen) newCommands() *command.Set {
	set := command.NewSet("screen", nil)
	set.Handle("resize", func(string) error {
		return s.Resize()
	})
	set.Handle("focus", func(args string) error {
		idx, err := command.OptInt(args, 0)
		if err != nil {
			return err
		}
		if err := s.Focus(idx); err != nil && !errors.Is(err, ErrFocusRange) {
			return err
		}
		return nil
	})
	return set
}
