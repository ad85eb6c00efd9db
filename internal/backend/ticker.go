// Package backend drives periodic work: the tick that counts down to the next
// sync, and the tracked data sources a sync pulls from.
package backend

import (
	"context"
	"time"

	"github.com/atomicstack/feedterm/internal/logging"
)

// Ticker calls fn every interval until its context ends.
type Ticker struct {
	interval time.Duration
	fn       func()
}

// NewTicker creates a ticker. A non-positive interval falls back to one
// second.
func NewTicker(interval time.Duration, fn func()) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval, fn: fn}
}

// Run blocks until ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	logging.Debug("ticker started every %s", t.interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.fn()
		}
	}
}
