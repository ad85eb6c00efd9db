package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/atomicstack/feedterm/internal/terminal"
)

// NewTerminal opens a terminal on a simulation screen of the given size.
func NewTerminal(t *testing.T, width, height int) (*terminal.Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := terminal.Open(sim, tcell.StyleDefault)
	if err != nil {
		t.Fatalf("open simulation terminal: %v", err)
	}
	sim.SetSize(width, height)
	if err := term.Reset(); err != nil {
		t.Fatalf("reset simulation terminal: %v", err)
	}
	t.Cleanup(term.Close)
	return term, sim
}

// CaptureScreen returns the simulation screen contents, one string per row,
// with trailing blanks trimmed.
func CaptureScreen(s tcell.Screen) []string {
	w, h := s.Size()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		rows[y] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

// WaitForScreen polls the screen until match reports true or the timeout
// expires.
func WaitForScreen(t *testing.T, s tcell.Screen, timeout time.Duration, match func([]string) bool) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for {
		rows := CaptureScreen(s)
		if match(rows) {
			return rows
		}
		select {
		case <-ctx.Done():
			t.Fatalf("timeout waiting for screen:\n%s", strings.Join(rows, "\n"))
			return rows
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Eventually polls cond until it holds or the timeout expires.
func Eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout: %s", msg)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// ScreenContains reports whether any row contains text.
func ScreenContains(rows []string, text string) bool {
	for _, row := range rows {
		if strings.Contains(row, text) {
			return true
		}
	}
	return false
}
