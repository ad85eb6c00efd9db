package events

import (
	"time"

	"github.com/atomicstack/feedterm/internal/logging"
)

type RenderTracer struct{}

var Render = RenderTracer{}

func (RenderTracer) Wake() {
	logging.Trace("render.wake", nil)
}

func (RenderTracer) Step(step string, elapsed time.Duration) {
	logging.Trace("render.step", map[string]interface{}{"step": step, "elapsed": elapsed.String()})
}

func (RenderTracer) StepError(step string, err error) {
	if err == nil {
		return
	}
	logging.Trace("render.step.error", map[string]interface{}{"step": step, "error": err.Error()})
}

func (RenderTracer) Tick(remaining int64) {
	logging.Trace("render.tick", map[string]interface{}{"remaining": remaining})
}

func (RenderTracer) Terminate() {
	logging.Trace("render.terminate", nil)
}
