// Package render runs the render coordinator: the single goroutine that syncs
// data sources and resizes, refreshes or redraws the screen, always holding
// the exclusion lock so it never overlaps a command.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/feedterm/internal/locks"
	"github.com/atomicstack/feedterm/internal/logging"
	"github.com/atomicstack/feedterm/internal/logging/events"
	"github.com/atomicstack/feedterm/internal/state"
)

// DefaultSyncInterval is the number of ticks between syncs.
const DefaultSyncInterval = 5

// Steps are the operations a pass may run. Nil steps are skipped.
type Steps struct {
	// Pending applies queued window requests.
	Pending func() error
	Sync    func() error
	Resize  func() error
	Refresh func() error
	Redraw  func() error
}

// Config configures a Coordinator.
type Config struct {
	Lock  *locks.Exclusion
	Vars  state.Vars
	Steps Steps
	// Alive is checked on every wake; once it reports false the coordinator
	// tears down and exits.
	Alive func() bool
	// Teardown runs in order on exit, e.g. detaching the log sink and then
	// releasing the terminal.
	Teardown     []func()
	SyncInterval int
}

// Coordinator is Idle until released, Active while running a pass and
// Terminating once Alive reports false.
type Coordinator struct {
	lock     *locks.Exclusion
	vars     state.Vars
	steps    Steps
	alive    func() bool
	teardown []func()
	interval int64

	signal    *Signal
	countdown atomic.Int64
	once      sync.Once
}

func New(cfg Config) *Coordinator {
	c := &Coordinator{
		lock:     cfg.Lock,
		vars:     cfg.Vars,
		steps:    cfg.Steps,
		alive:    cfg.Alive,
		teardown: cfg.Teardown,
		interval: int64(cfg.SyncInterval),
		signal:   NewSignal(),
	}
	if c.lock == nil {
		c.lock = locks.New()
	}
	if c.vars == nil {
		c.vars = state.NewVars()
	}
	if c.alive == nil {
		c.alive = func() bool { return true }
	}
	if c.interval < 0 {
		c.interval = 0
	}
	// the first tick syncs
	c.countdown.Store(1)
	return c
}

// Release wakes the coordinator.
func (c *Coordinator) Release() {
	c.signal.Set()
}

// Tick counts down to the next sync and wakes the coordinator when it is due.
func (c *Coordinator) Tick() {
	remaining := c.countdown.Add(-1)
	events.Render.Tick(remaining)
	if remaining <= 0 {
		c.Release()
	}
}

// Run waits for releases until ctx ends or Alive turns false.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.terminate()
			return nil
		case <-c.signal.C():
		}
		events.Render.Wake()
		if !c.alive() {
			c.terminate()
			return nil
		}
		c.Pass()
	}
}

// Pass runs one Active cycle: pending windows, then sync if due, then the
// first of resize, refresh or redraw that was requested. Flags still set
// afterwards, including ones raised by the steps themselves, wake the next
// pass.
func (c *Coordinator) Pass() {
	c.lock.Write(func() {
		c.step("pending", c.steps.Pending)

		if c.countdown.Load() <= 0 {
			c.step("sync", c.steps.Sync)
			c.countdown.Store(c.interval)
		}

		switch {
		case c.vars.Take(state.NeedsResize):
			c.vars.Set(state.NeedsRefresh, false)
			c.vars.Set(state.NeedsRedraw, false)
			c.step("resize", c.steps.Resize)
		case c.vars.Take(state.NeedsRefresh):
			c.step("refresh", c.steps.Refresh)
		case c.vars.Take(state.NeedsRedraw):
			c.step("redraw", c.steps.Redraw)
		}
	})
	if c.pending() {
		c.Release()
	}
}

func (c *Coordinator) pending() bool {
	return c.vars.Bool(state.NeedsResize) || c.vars.Bool(state.NeedsRefresh) || c.vars.Bool(state.NeedsRedraw)
}

// step runs fn so that an error or panic is logged and the pass carries on.
func (c *Coordinator) step(name string, fn func() error) {
	if fn == nil {
		return
	}
	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	events.Render.Step(name, time.Since(start))
	if err != nil {
		events.Render.StepError(name, err)
		logging.Component("render").Error(fmt.Sprintf("render %s: %v", name, err), slog.String("step", name))
	}
}

func (c *Coordinator) terminate() {
	c.once.Do(func() {
		events.Render.Terminate()
		for _, fn := range c.teardown {
			if fn != nil {
				fn()
			}
		}
	})
}
