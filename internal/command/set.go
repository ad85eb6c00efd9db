// Package command resolves key presses and command strings to the handler
// that owns them and runs them under the exclusion lock.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/atomicstack/feedterm/internal/logging"
)

// ErrBadArgument reports a malformed command argument. Commands that hit it
// log the error and do nothing.
var ErrBadArgument = errors.New("bad argument")

// Func runs a command. args is everything after the command name, trimmed.
type Func func(args string) error

// Target is anything commands and keys can be routed to.
type Target interface {
	Name() string
	Key(key string) (string, bool)
	Command(cmd string) bool
}

// Lister is implemented by targets that can report the commands they accept.
type Lister interface {
	Names() []string
}

type entry struct {
	name string
	fn   Func
}

// Set is a table of named commands plus key bindings.
type Set struct {
	name string

	mu      sync.RWMutex
	entries []entry
	keys    map[string]string
}

// NewSet returns an empty set; keys maps key names to command strings.
func NewSet(name string, keys map[string]string) *Set {
	s := &Set{name: name, keys: make(map[string]string, len(keys))}
	for k, cmd := range keys {
		s.keys[k] = cmd
	}
	return s
}

func (s *Set) Name() string { return s.name }

// Handle registers fn under name. Longer names win over shorter ones that
// share a prefix.
func (s *Set) Handle(name string, fn Func) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{name: name, fn: fn})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return len(s.entries[i].name) > len(s.entries[j].name)
	})
}

// Bind maps key to cmd, replacing any existing binding.
func (s *Set) Bind(key, cmd string) {
	s.mu.Lock()
	s.keys[key] = cmd
	s.mu.Unlock()
}

// Key returns the command bound to key.
func (s *Set) Key(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cmd, ok := s.keys[key]
	return cmd, ok
}

// Command runs cmd if its first words name a registered command. It reports
// whether the command was recognised, even if running it failed.
func (s *Set) Command(cmd string) bool {
	s.mu.RLock()
	var match *entry
	for i := range s.entries {
		if matches(cmd, s.entries[i].name) {
			match = &s.entries[i]
			break
		}
	}
	s.mu.RUnlock()
	if match == nil {
		return false
	}
	args := strings.TrimSpace(strings.TrimPrefix(cmd, match.name))
	if err := match.fn(args); err != nil {
		logging.Errorf("%s: %v", match.name, err)
	}
	return true
}

// Names lists the registered commands.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.name)
	}
	sort.Strings(out)
	return out
}

func matches(cmd, name string) bool {
	if !strings.HasPrefix(cmd, name) {
		return false
	}
	rest := cmd[len(name):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// OptInt parses an optional integer argument. An empty argument yields
// fallback.
func OptInt(args string, fallback int) (int, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.Fields(args)[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrBadArgument, args)
	}
	return n, nil
}
