package render

// Signal is a coalescing wake-up: any number of Set calls before the waiter
// runs produce a single wake.
type Signal struct {
	ch chan struct{}
}

func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Set wakes the waiter. It never blocks.
func (s *Signal) Set() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C is closed over by the waiter.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}
