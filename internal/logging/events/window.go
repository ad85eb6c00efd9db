package events

import "github.com/atomicstack/feedterm/internal/logging"

type WindowTracer struct{}

type FocusTracer struct{}

var (
	Window = WindowTracer{}
	Focus  = FocusTracer{}
)

func (WindowTracer) Add(id, name string, floating bool) {
	logging.Trace("window.add", map[string]interface{}{"id": id, "name": name, "float": floating})
}

func (WindowTracer) Remove(id, name string) {
	logging.Trace("window.remove", map[string]interface{}{"id": id, "name": name})
}

func (WindowTracer) Request(kind string) {
	logging.Trace("window.request", map[string]interface{}{"kind": kind})
}

func (WindowTracer) Place(id, name string, top, left, height, width int) {
	logging.Trace("window.place", map[string]interface{}{
		"id":     id,
		"name":   name,
		"top":    top,
		"left":   left,
		"height": height,
		"width":  width,
	})
}

func (FocusTracer) Set(index int, id, name string) {
	logging.Trace("focus.set", map[string]interface{}{"index": index, "id": id, "name": name})
}

func (FocusTracer) Miss(index, length int) {
	logging.Trace("focus.miss", map[string]interface{}{"index": index, "length": length})
}
