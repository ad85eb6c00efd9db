package events

import "github.com/atomicstack/feedterm/internal/logging"

type CommandTracer struct{}

type InputTracer struct{}

var (
	Command = CommandTracer{}
	Input   = InputTracer{}
)

func (CommandTracer) Key(key, command string) {
	logging.Trace("command.key", map[string]interface{}{"key": key, "command": command})
}

func (CommandTracer) Split(raw string, commands []string) {
	logging.Trace("command.split", map[string]interface{}{"raw": raw, "commands": commands})
}

func (CommandTracer) Run(command, handler string) {
	logging.Trace("command.run", map[string]interface{}{"command": command, "handler": handler})
}

func (CommandTracer) Unresolved(command string, suggestions []string) {
	logging.Trace("command.unresolved", map[string]interface{}{"command": command, "suggestions": suggestions})
}

func (CommandTracer) Prompt(result string) {
	logging.Trace("command.prompt", map[string]interface{}{"result": result})
}

func (InputTracer) Key(key string, subEdit bool) {
	logging.Trace("input.key", map[string]interface{}{"key": key, "subedit": subEdit})
}

func (InputTracer) EditStart(prompt string) {
	logging.Trace("input.edit.start", map[string]interface{}{"prompt": prompt})
}

func (InputTracer) EditDone(result string) {
	logging.Trace("input.edit.done", map[string]interface{}{"result": result})
}

func (InputTracer) Pause() {
	logging.Trace("input.pause", nil)
}

func (InputTracer) Resume() {
	logging.Trace("input.resume", nil)
}
