package state

import "sync"

// Well-known shared variables.
const (
	NeedsResize  = "needs_resize"
	NeedsRefresh = "needs_refresh"
	NeedsRedraw  = "needs_redraw"
	InfoMsg      = "info_msg"
	ErrorMsg     = "error_msg"
)

// Vars is the shared variable store read and written by every component.
type Vars interface {
	Get(name string) (interface{}, bool)
	Set(name string, value interface{})
	Bool(name string) bool
	String(name string) string
	// Append adds line to a string variable, newline separated, and returns
	// the new value.
	Append(name, line string) string
	// Take returns a boolean variable and clears it in one step.
	Take(name string) bool
}

type varStore struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

func NewVars() Vars {
	return &varStore{values: make(map[string]interface{})}
}

func (v *varStore) Get(name string) (interface{}, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.values[name]
	return val, ok
}

func (v *varStore) Set(name string, value interface{}) {
	v.mu.Lock()
	v.values[name] = value
	v.mu.Unlock()
}

func (v *varStore) Bool(name string) bool {
	val, _ := v.Get(name)
	b, _ := val.(bool)
	return b
}

func (v *varStore) String(name string) string {
	val, _ := v.Get(name)
	s, _ := val.(string)
	return s
}

func (v *varStore) Append(name, line string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	cur, _ := v.values[name].(string)
	if cur == "" {
		cur = line
	} else {
		cur += "\n" + line
	}
	v.values[name] = cur
	return cur
}

func (v *varStore) Take(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, _ := v.values[name].(bool)
	if b {
		v.values[name] = false
	}
	return b
}
