// Package dispatcher applies sync results to the shared stores.
package dispatcher

import (
	"github.com/atomicstack/feedterm/internal/backend"
	"github.com/atomicstack/feedterm/internal/logging"
	"github.com/atomicstack/feedterm/internal/state"
)

type Result struct {
	Updated []string
	Failed  []string
}

// Changed reports whether any store was updated.
func (r Result) Changed() bool {
	return len(r.Updated) > 0
}

type Dispatcher struct {
	items state.ItemStore
	vars  state.Vars
}

func New(items state.ItemStore, vars state.Vars) *Dispatcher {
	return &Dispatcher{items: items, vars: vars}
}

// Handle applies one source event. Failed fetches keep the previous items.
func (d *Dispatcher) Handle(evt backend.Event) bool {
	if evt.Err != nil {
		logging.Errorf("sync %s: %v", evt.Source, evt.Err)
		return false
	}
	d.items.SetSource(evt.Source, evt.Items)
	return true
}

// Apply handles a batch and requests a refresh when anything changed.
func (d *Dispatcher) Apply(evts []backend.Event) Result {
	var res Result
	for _, evt := range evts {
		if d.Handle(evt) {
			res.Updated = append(res.Updated, evt.Source)
		} else {
			res.Failed = append(res.Failed, evt.Source)
		}
	}
	if res.Changed() {
		d.vars.Set(state.NeedsRefresh, true)
	}
	return res
}
