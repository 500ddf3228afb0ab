package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/qchip/pkg/pipeline"
)

func previewFixture(t *testing.T) previewModel {
	t.Helper()
	opts := pipeline.Options{Rows: 2, Cols: 3, NoLabels: true}
	l, err := pipeline.NewRunner(nil, nil, nil).Layout(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	return newPreviewModel(l)
}

func press(m previewModel, keys ...tea.KeyMsg) previewModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(previewModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestPreviewNavigation(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		row, col int
	}{
		{"start at origin", nil, 0, 0},
		{"up raises row", []tea.KeyMsg{keyUp}, 1, 0},
		{"clamped at top", []tea.KeyMsg{keyUp, keyUp, keyUp}, 1, 0},
		{"clamped at left", []tea.KeyMsg{keyLeft}, 0, 0},
		{"right twice", []tea.KeyMsg{keyRight, keyRight, keyRight}, 0, 2},
		{"vim keys", []tea.KeyMsg{runeKey('k'), runeKey('l'), runeKey('j')}, 0, 1},
		{"home", []tea.KeyMsg{keyUp, keyRight, runeKey('g')}, 0, 0},
		{"down at bottom", []tea.KeyMsg{keyDown}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(previewFixture(t), tt.keys...)
			if m.row != tt.row || m.col != tt.col {
				t.Errorf("cursor = (%d,%d), want (%d,%d)", m.row, m.col, tt.row, tt.col)
			}
		})
	}
}

func TestPreviewQuit(t *testing.T) {
	m := previewFixture(t)
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := m.Update(k); cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
	if _, cmd := m.Update(keyUp); cmd != nil {
		t.Error("moving should not return a command")
	}
}

func TestPreviewView(t *testing.T) {
	m := previewFixture(t)
	view := m.View()

	for _, want := range []string{"2x3 lattice", "checkerboard", "site      (0,0)", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	// origin site has one horizontal and one vertical coupler
	if n := strings.Count(m.details(), "horizontal") + strings.Count(m.details(), "vertical"); n != 2 {
		t.Errorf("origin details list %d couplers, want 2:\n%s", n, m.details())
	}
	// a 2x3 lattice has two plaquettes
	if n := strings.Count(m.grid(), "R") + strings.Count(m.grid(), "F"); n != 2 {
		t.Errorf("grid shows %d cells, want 2:\n%s", n, m.grid())
	}
}

func TestCouplerKeyIsSymmetric(t *testing.T) {
	a, b := siteKey{0, 1}, siteKey{1, 1}
	if couplerKey(a, b) != couplerKey(b, a) {
		t.Error("couplerKey should not depend on argument order")
	}
}
