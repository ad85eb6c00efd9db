// Package locks holds the process-wide exclusion lock that serialises command
// execution against render passes.
//
// Lock order: a holder of the exclusion lock may acquire the input pause lock
// (a command surrendering the terminal), but nothing that holds the pause lock
// may request the exclusion lock. The input dispatcher never touches the
// exclusion lock at all.
package locks

import "sync"

// Exclusion is a read/write lock. Writers are command execution and the render
// pass; readers are anything that only inspects shared state.
type Exclusion struct {
	mu sync.RWMutex
}

func New() *Exclusion {
	return &Exclusion{}
}

func (e *Exclusion) Lock()   { e.mu.Lock() }
func (e *Exclusion) Unlock() { e.mu.Unlock() }

// Write runs fn holding the write lock.
func (e *Exclusion) Write(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
}

// Read runs fn holding the read lock.
func (e *Exclusion) Read(fn func()) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn()
}
