package widget

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/feedterm/internal/options"
	"github.com/atomicstack/feedterm/internal/screen"
	"github.com/atomicstack/feedterm/internal/state"
	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/theme"
)

// MessageBox is a floating box showing the lines of one message variable.
// "close" clears the variable and removes the box.
type MessageBox struct {
	region

	mu      sync.Mutex
	vars    state.Vars
	varName string
	title   string
	fitted  int
	style   func(*theme.Styles) *lipgloss.Style
}

// NewInfoBox shows info_msg.
func NewInfoBox(opts options.Accessor, vars state.Vars) *MessageBox {
	return newMessageBox(InfoBoxName, state.InfoMsg, "info", opts, vars,
		func(s *theme.Styles) *lipgloss.Style { return s.Info })
}

// NewErrorBox shows error_msg.
func NewErrorBox(opts options.Accessor, vars state.Vars) *MessageBox {
	return newMessageBox(ErrorBoxName, state.ErrorMsg, "error", opts, vars,
		func(s *theme.Styles) *lipgloss.Style { return s.Error })
}

func newMessageBox(name, varName, title string, opts options.Accessor, vars state.Vars, style func(*theme.Styles) *lipgloss.Style) *MessageBox {
	m := &MessageBox{
		region:  newRegion(name, opts),
		vars:    vars,
		varName: varName,
		title:   title,
		style:   style,
	}
	m.Handle("close", m.cmdClose)
	return m
}

func (m *MessageBox) lines() []string {
	text := m.vars.String(m.varName)
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

// Height fits every line plus the border.
func (m *MessageBox) Height(avail int) int {
	return min(avail, len(m.lines())+2)
}

// Width fits the longest line plus border and padding.
func (m *MessageBox) Width(avail int) int {
	widest := runewidth.StringWidth(m.title) + 2
	for _, line := range m.lines() {
		widest = max(widest, runewidth.StringWidth(line))
	}
	return min(avail, widest+4)
}

func (m *MessageBox) Init(s *terminal.Surface, h screen.Host) {
	m.mu.Lock()
	m.bind(s, h)
	m.fitted = len(m.lines())
	m.mu.Unlock()
}

// Refresh redraws the box. A message that grew or shrank since the last
// layout asks for a relayout so the box fits it again.
func (m *MessageBox) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.host == nil {
		return
	}
	lines := m.lines()
	if len(lines) != m.fitted {
		m.fitted = len(lines)
		m.vars.Set(state.NeedsResize, true)
	}
	m.draw(lines)
}

func (m *MessageBox) Redraw() { m.Refresh() }

func (m *MessageBox) draw(lines []string) {
	height, width := m.surface.Size()
	if height < 2 || width < 2 {
		return
	}
	styles := m.host.Styles()
	border := theme.Cell(styles.Border)
	text := theme.Cell(m.style(styles))
	base := theme.Cell(styles.Base)

	m.surface.Fill(base)
	for x := 1; x < width-1; x++ {
		m.surface.SetCell(0, x, '─', border)
		m.surface.SetCell(height-1, x, '─', border)
	}
	for y := 1; y < height-1; y++ {
		m.surface.SetCell(y, 0, '│', border)
		m.surface.SetCell(y, width-1, '│', border)
	}
	m.surface.SetCell(0, 0, '┌', border)
	m.surface.SetCell(0, width-1, '┐', border)
	m.surface.SetCell(height-1, 0, '└', border)
	m.surface.SetCell(height-1, width-1, '┘', border)
	m.surface.Print(0, 2, clip(" "+m.title+" ", width-4), border)

	room := height - 2
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for i, line := range lines {
		m.surface.Print(i+1, 2, clip(line, width-4), text)
	}
}

func (m *MessageBox) cmdClose(string) error {
	m.vars.Set(m.varName, "")
	m.mu.Lock()
	h := m.host
	m.mu.Unlock()
	if h != nil {
		h.Die()
	}
	return nil
}
