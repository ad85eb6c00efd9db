package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key is a single keystroke read from the terminal.
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// KeyFromEvent converts a tcell key event.
func KeyFromEvent(ev *tcell.EventKey) Key {
	return Key{Code: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
}

// RuneKey builds a key for a printable rune.
func RuneKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// Printable reports whether the key carries a printable character.
func (k Key) Printable() bool {
	return k.Code == tcell.KeyRune && unicode.IsPrint(k.Rune)
}

// Name returns the binding name of the key. Printable keys map to their
// character form; everything else uses tcell's key names ("Enter", "Up",
// "Ctrl-L").
func (k Key) Name() string {
	if k.Code == tcell.KeyRune {
		if k.Mod&tcell.ModAlt != 0 {
			return "Alt-" + string(k.Rune)
		}
		return string(k.Rune)
	}
	switch k.Code {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	}
	if name, ok := tcell.KeyNames[k.Code]; ok {
		return name
	}
	return ""
}
