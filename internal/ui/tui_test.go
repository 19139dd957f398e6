package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasks-go/internal/todo"
)

func newTestViewer(t *testing.T, contents ...string) *viewerModel {
	t.Helper()
	s := todo.NewNamed("work")
	for _, c := range contents {
		s.Add(c)
	}
	return newViewerModel(s, NewRenderer(&bytes.Buffer{}, WithColor(false), WithBarWidth(10)))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *viewerModel, keys ...tea.KeyMsg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		if next != m {
			t.Fatalf("Update returned a different model")
		}
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func completedFlags(s *todo.Store) []bool {
	var out []bool
	for _, task := range s.Tasks() {
		out = append(out, task.Completed)
	}
	return out
}

func TestViewerCursorMovement(t *testing.T) {
	m := newTestViewer(t, "a", "b", "c")

	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above first task: %d", m.cursor)
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor moved past last task: %d", m.cursor)
	}
	press(t, m, runes("k"))
	if m.cursor != 1 {
		t.Errorf("cursor: got %d, want 1", m.cursor)
	}
}

func TestViewerComplete(t *testing.T) {
	m := newTestViewer(t, "a", "b")

	press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	if got := completedFlags(m.store); got[0] || !got[1] {
		t.Errorf("completed flags: %v", got)
	}
	if !m.dirty {
		t.Error("viewer should be dirty after completing")
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	if got := completedFlags(m.store); !got[0] {
		t.Errorf("enter did not complete: %v", got)
	}
}

func TestViewerCompleteOnEmptyStore(t *testing.T) {
	m := newTestViewer(t)
	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.dirty {
		t.Error("empty store should not become dirty")
	}
	if m.status != "no tasks" {
		t.Errorf("status: %q", m.status)
	}
}

func TestViewerRemove(t *testing.T) {
	m := newTestViewer(t, "a", "b", "c")

	press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, runes("d"))
	if m.store.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", m.store.Len())
	}
	if m.cursor != 1 {
		t.Errorf("cursor should clamp to the new last task, got %d", m.cursor)
	}
	task, err := m.store.Task(1)
	if err != nil || task.Content != "b" {
		t.Errorf("remaining task: %+v, %v", task, err)
	}
}

func TestViewerRemoveCompleted(t *testing.T) {
	m := newTestViewer(t, "a", "b", "c")

	press(t, m, runes("c"))
	if m.status == "" || m.dirty {
		t.Errorf("nothing completed: status %q dirty %v", m.status, m.dirty)
	}

	press(t, m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace}, runes("c"))
	if m.store.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", m.store.Len())
	}
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}
}

func TestViewerQuitSaves(t *testing.T) {
	m := newTestViewer(t, "a")
	cmd := press(t, m, runes("q"))
	if !isQuit(cmd) {
		t.Fatal("q should quit")
	}
	if !m.save {
		t.Error("q should request a save")
	}
}

func TestViewerEscDiscards(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTestViewer(t, "a")
		press(t, m, tea.KeyMsg{Type: tea.KeySpace})
		cmd := press(t, m, key)
		if !isQuit(cmd) {
			t.Fatalf("%s should quit", key)
		}
		if m.save {
			t.Errorf("%s should not save", key)
		}
	}
}

func TestViewerIgnoresOtherMessages(t *testing.T) {
	m := newTestViewer(t, "a")
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if next != m || cmd != nil {
		t.Error("non-key messages should be ignored")
	}
}

func TestViewerView(t *testing.T) {
	m := newTestViewer(t, "write report", "email team")
	press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})

	view := m.View()
	for _, want := range []string{
		"Tasks: work *",
		"work: [#####|----] 1/2",
		"  1: write report",
		"> 2: email team (done)",
		"q save & quit",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewerEmptyView(t *testing.T) {
	m := newTestViewer(t)
	if !strings.Contains(m.View(), "No tasks.") {
		t.Errorf("empty view:\n%s", m.View())
	}
}

func TestViewerHelpToggle(t *testing.T) {
	m := newTestViewer(t, "a")
	press(t, m, runes("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	press(t, m, runes("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not dismissed")
	}
}

func TestViewerOptions(t *testing.T) {
	if c := newViewerConfig(); !c.altScreen {
		t.Error("alternate screen should be on by default")
	}
	c := newViewerConfig(WithAltScreen(false), WithRenderOptions(WithColor(false), WithBarWidth(20)))
	if c.altScreen {
		t.Error("WithAltScreen(false) was ignored")
	}
	if len(c.renderOpts) != 2 {
		t.Errorf("render options: got %d, want 2", len(c.renderOpts))
	}
}

func TestRunViewerRequiresTTY(t *testing.T) {
	if IsTTY(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	err := RunViewer(t.Context(), todo.New(), nil)
	if err != ErrNotTTY {
		t.Errorf("got %v, want ErrNotTTY", err)
	}
}
