package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

func TestCellConvertsPaletteColors(t *testing.T) {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Background(lipgloss.Color("238")).Bold(true)
	fg, bg, attrs := Cell(&style).Decompose()
	if fg != tcell.PaletteColor(196) {
		t.Fatalf("unexpected foreground %v", fg)
	}
	if bg != tcell.PaletteColor(238) {
		t.Fatalf("unexpected background %v", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("expected bold attribute")
	}
}

func TestCellConvertsHexColors(t *testing.T) {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000"))
	fg, _, _ := Cell(&style).Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("unexpected foreground %v", fg)
	}
}

func TestCellNilAndUnsetAreDefault(t *testing.T) {
	if Cell(nil) != tcell.StyleDefault {
		t.Fatalf("nil style should map to default")
	}
	fg, bg, _ := Cell(Default().Base).Decompose()
	if fg != tcell.ColorDefault || bg != tcell.ColorDefault {
		t.Fatalf("base style should use default colors, got %v/%v", fg, bg)
	}
}
