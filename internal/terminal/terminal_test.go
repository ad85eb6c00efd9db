package terminal_test

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/atomicstack/feedterm/internal/terminal"
	"github.com/atomicstack/feedterm/internal/testutil"
)

type failingScreen struct {
	tcell.Screen
}

func (failingScreen) Init() error { return errors.New("no tty") }

func TestOpenReportsSetupFailure(t *testing.T) {
	_, err := terminal.Open(failingScreen{Screen: tcell.NewSimulationScreen("UTF-8")}, tcell.StyleDefault)
	if !errors.Is(err, terminal.ErrSetup) {
		t.Fatalf("expected ErrSetup, got %v", err)
	}
}

func TestResetPicksUpNewSize(t *testing.T) {
	term, sim := testutil.NewTerminal(t, 80, 24)
	if w, h := term.Size(); w != 80 || h != 24 {
		t.Fatalf("expected 80x24, got %dx%d", w, h)
	}
	sim.SetSize(100, 30)
	if err := term.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if w, h := term.Size(); w != 100 || h != 30 {
		t.Fatalf("expected 100x30, got %dx%d", w, h)
	}
}

func TestSurfaceClipsWrites(t *testing.T) {
	term, sim := testutil.NewTerminal(t, 20, 5)
	s := term.Surface(1, 2, 2, 5)

	n := s.Print(0, 0, "abcdefgh", tcell.StyleDefault)
	if n != 5 {
		t.Fatalf("expected 5 cells written, got %d", n)
	}
	s.Print(5, 0, "outside", tcell.StyleDefault)
	s.SetCell(1, -1, 'x', tcell.StyleDefault)

	rows := testutil.CaptureScreen(sim)
	if rows[1] != "  abcde" {
		t.Fatalf("unexpected row 1: %q", rows[1])
	}
	for _, y := range []int{0, 2, 3, 4} {
		if rows[y] != "" {
			t.Fatalf("row %d should be blank, got %q", y, rows[y])
		}
	}
}

func TestSurfaceDropsStraddlingWideRune(t *testing.T) {
	term, _ := testutil.NewTerminal(t, 10, 2)
	s := term.Surface(0, 0, 1, 3)
	if n := s.Print(0, 0, "a世界", tcell.StyleDefault); n != 3 {
		t.Fatalf("expected 3 cells, got %d", n)
	}
}

func TestSurfaceFill(t *testing.T) {
	term, sim := testutil.NewTerminal(t, 6, 3)
	s := term.Surface(0, 0, 3, 6)
	s.Print(1, 0, "hello", tcell.StyleDefault)
	s.Clear()
	for y, row := range testutil.CaptureScreen(sim) {
		if row != "" {
			t.Fatalf("row %d not cleared: %q", y, row)
		}
	}
}

func TestKeyNames(t *testing.T) {
	cases := []struct {
		key  terminal.Key
		want string
	}{
		{terminal.RuneKey('q'), "q"},
		{terminal.RuneKey(':'), ":"},
		{terminal.Key{Code: tcell.KeyRune, Rune: 'x', Mod: tcell.ModAlt}, "Alt-x"},
		{terminal.Key{Code: tcell.KeyEnter}, "Enter"},
		{terminal.Key{Code: tcell.KeyUp}, "Up"},
		{terminal.Key{Code: tcell.KeyBackspace2}, "Backspace"},
		{terminal.Key{Code: tcell.KeyCtrlL}, "Ctrl-L"},
	}
	for _, tc := range cases {
		if got := tc.key.Name(); got != tc.want {
			t.Fatalf("key %#v: expected %q, got %q", tc.key, tc.want, got)
		}
	}
	if !terminal.RuneKey('a').Printable() {
		t.Fatalf("rune key should be printable")
	}
	if (terminal.Key{Code: tcell.KeyEnter}).Printable() {
		t.Fatalf("enter should not be printable")
	}
}
