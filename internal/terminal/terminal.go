// Package terminal owns the tcell screen and hands out clipped surfaces for
// each region.
package terminal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/atomicstack/feedterm/internal/logging"
)

// ErrSetup reports that the terminal could not enter raw/no-echo/color mode.
// Callers treat it as fatal to the UI.
var ErrSetup = errors.New("terminal setup failed")

var newScreen = tcell.NewScreen

// Terminal wraps a tcell screen and tracks its current geometry.
type Terminal struct {
	screen tcell.Screen
	base   tcell.Style

	mu     sync.RWMutex
	width  int
	height int
	closed bool
}

// New creates a terminal backed by the real tty.
func New(base tcell.Style) (*Terminal, error) {
	s, err := newScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSetup, err)
	}
	return Open(s, base)
}

// Open initialises the provided screen. Tests pass a simulation screen.
func Open(s tcell.Screen, base tcell.Style) (*Terminal, error) {
	if err := s.Init(); err != nil {
		logging.Errorf("terminal setup failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSetup, err)
	}
	t := &Terminal{screen: s, base: base}
	t.setup()
	return t, nil
}

func (t *Terminal) setup() {
	t.hideCursor()
	t.screen.SetStyle(t.base)
	w, h := t.screen.Size()
	t.mu.Lock()
	t.width, t.height = w, h
	t.mu.Unlock()
}

// hideCursor is best effort; some terminals cannot hide the cursor.
func (t *Terminal) hideCursor() {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("cursor visibility unsupported: %v", r)
		}
	}()
	t.screen.HideCursor()
}

// Reset discards everything on screen and re-reads the geometry.
func (t *Terminal) Reset() error {
	if t.isClosed() {
		return errors.New("terminal closed")
	}
	t.screen.Clear()
	t.screen.Sync()
	t.setup()
	return nil
}

// Size returns the last known width and height.
func (t *Terminal) Size() (width, height int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width, t.height
}

// Show flushes pending changes.
func (t *Terminal) Show() {
	if t.isClosed() {
		return
	}
	t.screen.Show()
}

// Clear blanks the whole screen buffer without repainting the terminal.
func (t *Terminal) Clear() {
	if t.isClosed() {
		return
	}
	t.screen.Clear()
}

// PollEvent blocks until an event arrives. It returns nil once the terminal
// has been closed.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Interrupt wakes a goroutine blocked in PollEvent.
func (t *Terminal) Interrupt(data interface{}) {
	if t.isClosed() {
		return
	}
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// Suspend hands the tty back to the shell, e.g. for an external program.
func (t *Terminal) Suspend() error {
	return t.screen.Suspend()
}

// Resume takes the tty back after Suspend.
func (t *Terminal) Resume() error {
	if err := t.screen.Resume(); err != nil {
		return err
	}
	t.setup()
	return nil
}

// Close restores the tty. It is safe to call more than once.
func (t *Terminal) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) isClosed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}

// Surface returns a drawing area positioned at top/left.
func (t *Terminal) Surface(top, left, height, width int) *Surface {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	return &Surface{screen: t.screen, base: t.base, top: top, left: left, height: height, width: width}
}

// Screen exposes the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}
