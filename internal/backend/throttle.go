package backend

import (
	"sync"
	"time"
)

// throttle enforces a minimum interval between successive operations.
type throttle struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	t := &throttle{now: time.Now}
	if interval > 0 {
		t.interval = interval
	}
	return t
}

// allow reports whether the operation may run now and, if so, starts the next
// interval. It never sleeps: the caller holds the exclusion lock.
func (t *throttle) allow() bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
