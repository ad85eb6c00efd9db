package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

// Styles describes reusable Lip Gloss styles shared across the regions.
type Styles struct {
	Base         *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Status       *lipgloss.Style
	Prompt       *lipgloss.Style
	Input        *lipgloss.Style
	Border       *lipgloss.Style
}

var defaultStyles = Styles{
	Base: ptr(
		lipgloss.NewStyle(),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Reverse(true),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Cell converts a Lip Gloss style into the equivalent terminal cell style.
// Only colors and the bold/italic/reverse attributes carry over.
func Cell(style *lipgloss.Style) tcell.Style {
	out := tcell.StyleDefault
	if style == nil {
		return out
	}
	out = out.Foreground(color(style.GetForeground())).Background(color(style.GetBackground()))
	out = out.Bold(style.GetBold()).Italic(style.GetItalic()).Reverse(style.GetReverse())
	return out
}

func color(c lipgloss.TerminalColor) tcell.Color {
	switch v := c.(type) {
	case lipgloss.Color:
		s := string(v)
		if s == "" {
			return tcell.ColorDefault
		}
		if n, err := strconv.Atoi(s); err == nil {
			if n < 0 || n > 255 {
				return tcell.ColorDefault
			}
			return tcell.PaletteColor(n)
		}
		return tcell.GetColor(s)
	default:
		return tcell.ColorDefault
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
