package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/feedterm/internal/backend"
	"github.com/atomicstack/feedterm/internal/command"
	"github.com/atomicstack/feedterm/internal/data/dispatcher"
	"github.com/atomicstack/feedterm/internal/input"
	"github.com/atomicstack/feedterm/internal/locks"
	"github.com/atomicstack/feedterm/internal/logging"
	"github.com/atomicstack/feedterm/internal/logging/events"
	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/render"
	"github.com/atomicstack/feedterm/internal/screen"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/theme"
	"github.com/atomicstack/feedterm/internal/widget"
)

// Config describes user-provided application options.
type Config struct {
	OptionsPath  string
	Layout       string
	Feeds        []string
	Tick         time.Duration
	SyncInterval int
}

var openTerminal = func() (*terminal.Terminal, error) {
	return terminal.New(theme.Cell(theme.Default().Base))
}

// App wires the screen, the input dispatcher, the render coordinator and the
// command router together.
type App struct {
	cfg   Config
	opts  *options.Options
	vars  state.Vars
	items state.ItemStore

	lock    *locks.Exclusion
	term    *terminal.Terminal
	screen  *screen.Screen
	input   *input.Dispatcher
	render  *render.Coordinator
	router  *command.Router
	sources *backend.Sources
	data    *dispatcher.Dispatcher

	alive atomic.Bool
}

// Run loads options, takes over the terminal and runs until quit.
func Run(cfg Config) error {
	return RunContext(context.Background(), cfg)
}

// RunContext is Run with a context that also ends the session.
func RunContext(ctx context.Context, cfg Config) error {
	opts, err := options.Load(cfg.OptionsPath)
	if err != nil {
		return err
	}
	term, err := openTerminal()
	if err != nil {
		return err
	}
	a := New(cfg, opts, term)
	return a.Run(ctx)
}

// New builds an App on an already opened terminal.
func New(cfg Config, opts *options.Options, term *terminal.Terminal) *App {
	if cfg.Layout != "" {
		opts.Set(options.Layout, cfg.Layout)
	}
	if cfg.SyncInterval > 0 {
		opts.Set(options.SyncInterval, cfg.SyncInterval)
	}
	a := &App{
		cfg:   cfg,
		opts:  opts,
		vars:  state.NewVars(),
		items: state.NewItemStore(),
		lock:  locks.New(),
		term:  term,
	}
	a.alive.Store(true)

	a.sources = backend.NewSources()
	for _, feed := range cfg.Feeds {
		a.sources.Add(backend.NewFileSource(feed))
	}
	a.data = dispatcher.New(a.items, a.vars)

	a.input = input.New(term, a.vars, a.release)
	a.screen = screen.New(term, screen.Services{
		Options: opts,
		Vars:    a.vars,
		Items:   a.items,
		Styles:  theme.Default(),
		Release: a.release,
		Prompt:  a.prompt,
		Pause:   a.input.Pause,
		Unpause: a.input.Resume,
	})
	a.registerWindows()

	interval := opts.Int(options.SyncInterval)
	if interval <= 0 {
		interval = render.DefaultSyncInterval
	}
	a.render = render.New(render.Config{
		Lock: a.lock,
		Vars: a.vars,
		Steps: render.Steps{
			Pending: a.screen.ApplyPending,
			Sync:    a.sync,
			Resize:  a.screen.Resize,
			Refresh: func() error { a.screen.Refresh(); return nil },
			Redraw:  func() error { a.screen.Redraw(); return nil },
		},
		Alive:        a.alive.Load,
		Teardown:     []func(){logging.DetachSink, term.Close},
		SyncInterval: interval,
	})

	a.router = command.NewRouter(command.Options{
		Lock:    a.lock,
		Self:    []command.Target{a.commands(), a.screen.Commands()},
		Chain:   a.screen.Targets,
		Prompt:  a.prompt,
		Release: a.release,
	})
	return a
}

func (a *App) registerWindows() {
	a.screen.Register(widget.ListName, func() screen.Region { return widget.NewList(a.opts) })
	a.screen.Register(widget.StatusName, func() screen.Region { return widget.NewStatus(a.opts) })
	a.screen.Register(widget.InputName, func() screen.Region { return widget.NewInputBox(a.opts) })
	a.screen.Register(widget.InfoBoxName, func() screen.Region { return widget.NewInfoBox(a.opts, a.vars) })
	a.screen.Register(widget.ErrorBoxName, func() screen.Region { return widget.NewErrorBox(a.opts, a.vars) })
}

// commands are the app's own handlers. "command" is handled by the router.
func (a *App) commands() *command.Set {
	set := command.NewSet("main", a.opts.KeyBindings("main"))
	set.Handle("quit", func(string) error {
		events.App.Quit()
		a.alive.Store(false)
		return nil
	})
	set.Handle("sync", func(string) error {
		return a.sync()
	})
	return set
}

func (a *App) release() {
	if a.render != nil {
		a.render.Release()
	}
}

// prompt runs a sub-edit on the input region. It must not be called with the
// exclusion lock held.
func (a *App) prompt(ctx context.Context, label string) (string, error) {
	region, ok := a.screen.InputRegion()
	if !ok {
		return "", errors.New("no input region")
	}
	return a.input.Edit(ctx, region, label)
}

// sync fetches every source. Failed sources are reported by the data
// dispatcher, once each, and keep their previous items.
func (a *App) sync() error {
	res := a.data.Apply(a.sources.Sync(context.Background()))
	if len(res.Failed) > 0 {
		logging.Debug("sync: %d updated, %d failed", len(res.Updated), len(res.Failed))
	}
	return nil
}

// Alive reports whether quit has not been issued yet.
func (a *App) Alive() bool {
	return a.alive.Load()
}

// Run starts every goroutine and blocks until they have all exited.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, kind := range []string{widget.ListName, widget.StatusName, widget.InputName} {
		if err := a.screen.AddKind(kind); err != nil {
			a.term.Close()
			return err
		}
	}
	logging.AttachSink(newMessageSink(a.screen, a.vars, a.release))
	a.vars.Set(state.NeedsResize, true)
	a.release()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return a.render.Run(gctx)
	})
	g.Go(func() error {
		return a.input.Run(gctx)
	})
	g.Go(func() error {
		return backend.NewTicker(a.cfg.Tick, a.render.Tick).Run(gctx)
	})
	g.Go(func() error {
		return a.loop(gctx)
	})
	err := g.Wait()
	events.App.Stop(err)
	return err
}

// loop resolves queued keys and runs the commands they are bound to.
func (a *App) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-a.input.Events():
			cmd, ok := a.router.ResolveKey(ev.Key)
			if !ok {
				continue
			}
			if err := a.router.Run(ctx, cmd); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error(err)
			}
			if !a.alive.Load() {
				return nil
			}
		}
	}
}
