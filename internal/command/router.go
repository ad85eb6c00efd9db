package command

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/feedterm/internal/locks"
	"github.com/atomicstack/feedterm/internal/logging"
	"github.com/atomicstack/feedterm/internal/logging/events"
)

// PromptCommand opens the interactive command line and runs what is typed.
const PromptCommand = "command"

// PromptLabel is shown in front of the interactive command line.
const PromptLabel = ":"

// PromptFunc blocks until the user finishes a line of input.
type PromptFunc func(ctx context.Context, prompt string) (string, error)

// Router resolves keys and commands against its own handlers and the live
// focus chain.
type Router struct {
	lock    *locks.Exclusion
	self    []Target
	chain   func() []Target
	prompt  PromptFunc
	release func()
}

// Options configures a Router.
type Options struct {
	Lock *locks.Exclusion
	// Self handlers are consulted before the focus chain for commands.
	Self []Target
	// Chain returns the focus chain, focused region first.
	Chain   func() []Target
	Prompt  PromptFunc
	Release func()
}

func NewRouter(opts Options) *Router {
	r := &Router{
		lock:    opts.Lock,
		self:    opts.Self,
		chain:   opts.Chain,
		prompt:  opts.Prompt,
		release: opts.Release,
	}
	if r.lock == nil {
		r.lock = locks.New()
	}
	if r.chain == nil {
		r.chain = func() []Target { return nil }
	}
	if r.release == nil {
		r.release = func() {}
	}
	return r
}

// ResolveKey finds the command bound to key. The focus chain is consulted
// before the router's own handlers so the focused region can shadow global
// bindings.
func (r *Router) ResolveKey(key string) (cmd string, ok bool) {
	r.lock.Read(func() {
		chain := r.chain()
		targets := make([]Target, 0, len(chain)+len(r.self))
		targets = append(append(targets, chain...), r.self...)
		for _, t := range targets {
			if cmd, ok = t.Key(key); ok {
				return
			}
		}
	})
	events.Command.Key(key, cmd)
	return cmd, ok
}

// Run splits raw and runs each piece in order. The render coordinator is
// released once the whole batch is done, whatever happened.
func (r *Router) Run(ctx context.Context, raw string) error {
	defer r.release()
	return r.run(ctx, raw)
}

func (r *Router) run(ctx context.Context, raw string) error {
	cmds := Split(raw)
	events.Command.Split(raw, cmds)
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cmd == PromptCommand {
			if err := r.runPrompt(ctx); err != nil {
				return err
			}
			continue
		}
		r.exec(cmd)
	}
	return nil
}

// runPrompt never holds the exclusion lock while waiting for input.
func (r *Router) runPrompt(ctx context.Context) error {
	if r.prompt == nil {
		logging.Warn("no input region for %s", PromptCommand)
		return nil
	}
	result, err := r.prompt(ctx, PromptLabel)
	if err != nil {
		return err
	}
	events.Command.Prompt(result)
	if strings.TrimSpace(result) == "" {
		return nil
	}
	return r.run(ctx, result)
}

func (r *Router) exec(cmd string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.targets() {
		if t.Command(cmd) {
			events.Command.Run(cmd, t.Name())
			return true
		}
	}
	suggestions := r.suggest(cmd)
	events.Command.Unresolved(cmd, suggestions)
	if len(suggestions) > 0 {
		logging.Errorf("unknown command %q (did you mean %s?)", cmd, strings.Join(suggestions, ", "))
	} else {
		logging.Errorf("unknown command %q", cmd)
	}
	return false
}

func (r *Router) targets() []Target {
	return append(append([]Target(nil), r.self...), r.chain()...)
}

// suggest ranks every known command name against the first word of cmd.
func (r *Router) suggest(cmd string) []string {
	word := cmd
	if fields := strings.Fields(cmd); len(fields) > 0 {
		word = fields[0]
	}
	seen := map[string]bool{PromptCommand: true}
	names := []string{PromptCommand}
	for _, t := range r.targets() {
		l, ok := t.(Lister)
		if !ok {
			continue
		}
		for _, name := range l.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	ranks := fuzzy.RankFindFold(word, names)
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, rank := range ranks {
		if len(out) == 3 {
			break
		}
		out = append(out, rank.Target)
	}
	return out
}
