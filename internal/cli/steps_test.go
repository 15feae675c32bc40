package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glasspiral/glasspiral/pkg/trace"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStepListModelNavigation(t *testing.T) {
	m := NewStepListModel(trace.ExampleTrace())

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(StepListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after j, want 1", m.Cursor)
	}

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(StepListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after k, want 0", m.Cursor)
	}

	// k at the top stays put
	updated, _ = m.Update(keyMsg("k"))
	m = updated.(StepListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after k at top, want 0", m.Cursor)
	}
}

func TestStepListModelBounds(t *testing.T) {
	steps := trace.ExampleTrace()
	m := NewStepListModel(steps)

	updated, _ := m.Update(keyMsg("G"))
	m = updated.(StepListModel)
	if m.Cursor != len(steps)-1 {
		t.Errorf("Cursor = %d after G, want %d", m.Cursor, len(steps)-1)
	}

	// j at the bottom stays put
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(StepListModel)
	if m.Cursor != len(steps)-1 {
		t.Errorf("Cursor = %d after j at bottom, want %d", m.Cursor, len(steps)-1)
	}

	updated, _ = m.Update(keyMsg("g"))
	m = updated.(StepListModel)
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("Cursor, Offset = %d, %d after g, want 0, 0", m.Cursor, m.Offset)
	}
}

func TestStepListModelScrollOffset(t *testing.T) {
	steps := trace.ExampleTrace()
	m := NewStepListModel(steps)
	m.Height = 3

	for i := 0; i < 5; i++ {
		updated, _ := m.Update(keyMsg("j"))
		m = updated.(StepListModel)
	}

	if m.Cursor != 5 {
		t.Fatalf("Cursor = %d, want 5", m.Cursor)
	}
	if m.Offset != 3 {
		t.Errorf("Offset = %d, want 3", m.Offset)
	}
}

func TestStepListModelQuit(t *testing.T) {
	m := NewStepListModel(trace.ExampleTrace())

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
}

func TestStepListModelView(t *testing.T) {
	m := NewStepListModel(trace.ExampleTrace())

	view := m.View()
	if !strings.Contains(view, "Trace Steps") {
		t.Error("View() should contain the title")
	}
	if !strings.Contains(view, "CALL") {
		t.Error("View() should show step types")
	}
}

func TestStepListModelWindowResize(t *testing.T) {
	m := NewStepListModel(trace.ExampleTrace())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = updated.(StepListModel)
	if m.Height != 5 {
		t.Errorf("Height = %d after tiny resize, want clamped 5", m.Height)
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = updated.(StepListModel)
	if m.Height != 32 {
		t.Errorf("Height = %d after resize, want 32", m.Height)
	}
}
