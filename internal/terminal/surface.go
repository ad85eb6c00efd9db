package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Surface is a rectangular window onto the screen. Regions draw in local
// coordinates and never see where they sit on screen. All writes are clipped.
type Surface struct {
	screen tcell.Screen
	base   tcell.Style

	top, left     int
	height, width int
}

// Size returns the surface height and width.
func (s *Surface) Size() (height, width int) {
	if s == nil {
		return 0, 0
	}
	return s.height, s.width
}

// SetCell writes r at local row y, column x.
func (s *Surface) SetCell(y, x int, r rune, style tcell.Style) {
	if s == nil || y < 0 || x < 0 || y >= s.height || x >= s.width {
		return
	}
	s.screen.SetContent(s.left+x, s.top+y, r, nil, style)
}

// Print writes text starting at y, x and returns the number of cells used.
// Wide runes that would straddle the right edge are dropped.
func (s *Surface) Print(y, x int, text string, style tcell.Style) int {
	if s == nil || y < 0 || y >= s.height {
		return 0
	}
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > s.width {
			break
		}
		s.SetCell(y, col, r, style)
		if w == 2 {
			s.SetCell(y, col+1, ' ', style)
		}
		col += w
	}
	return col - x
}

// ClearLine blanks row y.
func (s *Surface) ClearLine(y int, style tcell.Style) {
	if s == nil {
		return
	}
	for x := 0; x < s.width; x++ {
		s.SetCell(y, x, ' ', style)
	}
}

// Fill blanks the whole surface with style.
func (s *Surface) Fill(style tcell.Style) {
	if s == nil {
		return
	}
	for y := 0; y < s.height; y++ {
		s.ClearLine(y, style)
	}
}

// Clear blanks the surface with the terminal's base style.
func (s *Surface) Clear() {
	s.Fill(s.base)
}

// ShowCursor places the terminal cursor at local y, x.
func (s *Surface) ShowCursor(y, x int) {
	if s == nil || y < 0 || x < 0 || y >= s.height || x >= s.width {
		return
	}
	s.screen.ShowCursor(s.left+x, s.top+y)
}

// HideCursor hides the terminal cursor.
func (s *Surface) HideCursor() {
	if s == nil {
		return
	}
	s.screen.HideCursor()
}
