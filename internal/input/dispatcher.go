// Package input reads the terminal on its own goroutine and turns keystrokes
// into queued key events, or feeds them to an input region during a sub-edit.
package input

import (
	"context"
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/atomicstack/feedterm/internal/logging"
	"github.com/atomicstack/feedterm/internal/logging/events"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/terminal"
)

// ErrBusy reports an Edit while another sub-edit is in progress.
var ErrBusy = errors.New("input: sub-edit already active")

const queueSize = 128

// Event is a key press in normal mode, named the way key bindings are.
type Event struct {
	Key string
}

// Editor is the input-capturing region driven during a sub-edit.
type Editor interface {
	Edit(prompt string)
	AddKey(key terminal.Key) bool
	Result() string
	Reset()
	Refresh()
}

// Terminal is the part of the terminal the dispatcher uses.
type Terminal interface {
	PollEvent() tcell.Event
	Interrupt(data interface{})
	Show()
	Suspend() error
	Resume() error
}

type edit struct {
	editor Editor
	done   chan string
}

// Dispatcher owns terminal input.
type Dispatcher struct {
	term    Terminal
	vars    state.Vars
	release func()

	// pause is held while an event is handled; Pause holds it until Resume.
	pause sync.Mutex

	mu   sync.Mutex
	edit *edit

	events chan Event
}

func New(term Terminal, vars state.Vars, release func()) *Dispatcher {
	if release == nil {
		release = func() {}
	}
	return &Dispatcher{
		term:    term,
		vars:    vars,
		release: release,
		events:  make(chan Event, queueSize),
	}
}

// Events delivers normal-mode key presses.
func (d *Dispatcher) Events() <-chan Event {
	return d.events
}

// Run polls the terminal until ctx is done or the terminal is closed.
func (d *Dispatcher) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { d.term.Interrupt(nil) })
	defer stop()
	for {
		if ctx.Err() != nil {
			return nil
		}
		ev := d.term.PollEvent()
		if ev == nil {
			return nil
		}
		d.pause.Lock()
		d.handle(ev)
		d.pause.Unlock()
	}
}

func (d *Dispatcher) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.vars.Set(state.NeedsResize, true)
		d.release()
	case *tcell.EventKey:
		d.key(terminal.KeyFromEvent(ev))
	case *tcell.EventInterrupt:
	}
}

func (d *Dispatcher) key(k terminal.Key) {
	d.mu.Lock()
	active := d.edit
	d.mu.Unlock()

	name := k.Name()
	events.Input.Key(name, active != nil)
	if active != nil {
		d.feed(active, k)
		return
	}
	if name == "" {
		return
	}
	select {
	case d.events <- Event{Key: name}:
	default:
		logging.Warn("input queue full, dropping %s", name)
	}
}

func (d *Dispatcher) feed(e *edit, k terminal.Key) {
	more := e.editor.AddKey(k)
	e.editor.Refresh()
	d.term.Show()
	if more {
		return
	}
	result := e.editor.Result()
	e.editor.Reset()
	e.editor.Refresh()
	d.term.Show()

	d.mu.Lock()
	if d.edit == e {
		d.edit = nil
	}
	d.mu.Unlock()
	events.Input.EditDone(result)

	d.vars.Set(state.NeedsRedraw, true)
	d.release()
	e.done <- result
}

// Edit runs a sub-edit on editor and blocks until it completes or ctx ends.
func (d *Dispatcher) Edit(ctx context.Context, editor Editor, prompt string) (string, error) {
	e := &edit{editor: editor, done: make(chan string, 1)}
	d.mu.Lock()
	if d.edit != nil {
		d.mu.Unlock()
		return "", ErrBusy
	}
	d.edit = e
	d.mu.Unlock()

	events.Input.EditStart(prompt)
	editor.Edit(prompt)
	editor.Refresh()
	d.term.Show()

	select {
	case result := <-e.done:
		return result, nil
	case <-ctx.Done():
		d.mu.Lock()
		if d.edit == e {
			d.edit = nil
		}
		d.mu.Unlock()
		editor.Reset()
		return "", ctx.Err()
	}
}

// Editing reports whether a sub-edit is active.
func (d *Dispatcher) Editing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.edit != nil
}

// Pause stops input handling and hands the terminal back to the shell. It
// blocks until any event being handled is finished.
func (d *Dispatcher) Pause() {
	d.pause.Lock()
	events.Input.Pause()
	if err := d.term.Suspend(); err != nil {
		logging.Errorf("suspend terminal: %v", err)
	}
}

// Resume reclaims the terminal and restarts input handling. The terminal may
// have been changed while paused, so a resize is forced.
func (d *Dispatcher) Resume() {
	if err := d.term.Resume(); err != nil {
		logging.Errorf("resume terminal: %v", err)
	}
	events.Input.Resume()
	d.pause.Unlock()
	d.vars.Set(state.NeedsResize, true)
	d.release()
}
