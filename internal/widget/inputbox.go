package widget

import (
	"sync"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"

	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/screen"
	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/theme"
)

// InputBox is the command line. It is blank until a sub-edit starts.
type InputBox struct {
	region

	mu      sync.Mutex
	input   textinput.Model
	editing bool
	result  string
}

func NewInputBox(opts options.Accessor) *InputBox {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorHide)
	return &InputBox{region: newRegion(InputName, opts), input: ti}
}

func (b *InputBox) Height(avail int) int { return min(avail, 1) }
func (b *InputBox) Width(avail int) int  { return avail }
func (b *InputBox) IsInput() bool        { return true }

func (b *InputBox) Init(s *terminal.Surface, h screen.Host) {
	b.mu.Lock()
	b.bind(s, h)
	b.mu.Unlock()
}

// Edit starts a sub-edit showing prompt.
func (b *InputBox) Edit(prompt string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.input.Reset()
	b.input.Prompt = prompt
	b.input.Focus()
	b.editing = true
	b.result = ""
}

// AddKey feeds one key to the line editor. Enter completes the edit and Esc
// abandons it with an empty result.
func (b *InputBox) AddKey(k terminal.Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch k.Code {
	case tcell.KeyEnter:
		b.result = b.input.Value()
		b.editing = false
		return false
	case tcell.KeyEscape, tcell.KeyCtrlC:
		b.result = ""
		b.editing = false
		return false
	}
	if msg, ok := keyMsg(k); ok {
		b.input, _ = b.input.Update(msg)
	}
	return true
}

func (b *InputBox) Result() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

func (b *InputBox) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.input.Reset()
	b.input.Blur()
	b.input.Prompt = ""
	b.editing = false
}

// Value is the text typed so far.
func (b *InputBox) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.input.Value()
}

func (b *InputBox) Refresh() { b.draw() }
func (b *InputBox) Redraw()  { b.draw() }

func (b *InputBox) draw() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.host == nil {
		return
	}
	styles := b.host.Styles()
	base := theme.Cell(styles.Input)
	b.surface.ClearLine(0, base)
	if !b.editing {
		b.surface.HideCursor()
		return
	}
	prompt := b.input.Prompt
	x := b.surface.Print(0, 0, prompt, theme.Cell(styles.Prompt))
	text := ansi.Strip(b.input.View())
	text = text[min(len(prompt), len(text)):]
	b.surface.Print(0, x, text, base)

	before := []rune(b.input.Value())[:b.input.Position()]
	b.surface.ShowCursor(0, x+ansi.StringWidth(string(before)))
}

// keyMsg translates a terminal key into the message the line editor expects.
func keyMsg(k terminal.Key) (tea.KeyMsg, bool) {
	alt := k.Mod&tcell.ModAlt != 0
	if k.Printable() {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{k.Rune}, Alt: alt}, true
	}
	var t tea.KeyType
	switch k.Code {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t = tea.KeyBackspace
	case tcell.KeyDelete:
		t = tea.KeyDelete
	case tcell.KeyLeft:
		t = tea.KeyLeft
	case tcell.KeyRight:
		t = tea.KeyRight
	case tcell.KeyHome:
		t = tea.KeyHome
	case tcell.KeyEnd:
		t = tea.KeyEnd
	case tcell.KeyCtrlA:
		t = tea.KeyCtrlA
	case tcell.KeyCtrlE:
		t = tea.KeyCtrlE
	case tcell.KeyCtrlK:
		t = tea.KeyCtrlK
	case tcell.KeyCtrlU:
		t = tea.KeyCtrlU
	case tcell.KeyCtrlW:
		t = tea.KeyCtrlW
	default:
		return tea.KeyMsg{}, false
	}
	return tea.KeyMsg{Type: t, Alt: alt}, true
}
