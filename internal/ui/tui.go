package ui

import (
	"context"
	"errors"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasks-go/internal/todo"
)

// ErrNotTTY is returned when the viewer is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// Saver persists a store after the viewer exits.
type Saver interface {
	Save(s *todo.Store) error
}

// ViewerOption configures the viewer.
type ViewerOption func(*viewerConfig)

type viewerConfig struct {
	renderOpts []RenderOption
	altScreen  bool
}

func newViewerConfig(opts ...ViewerOption) *viewerConfig {
	c := &viewerConfig{altScreen: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRenderOptions passes styling options to the viewer's renderer.
func WithRenderOptions(opts ...RenderOption) ViewerOption {
	return func(c *viewerConfig) {
		c.renderOpts = append(c.renderOpts, opts...)
	}
}

// WithAltScreen runs the viewer in the terminal's alternate screen.
func WithAltScreen(enabled bool) ViewerOption {
	return func(c *viewerConfig) {
		c.altScreen = enabled
	}
}

// RunViewer shows store interactively. Changes are written through saver
// only when the user quits with q.
func RunViewer(ctx context.Context, store *todo.Store, saver Saver, opts ...ViewerOption) error {
	c := newViewerConfig(opts...)
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}

	model := newViewerModel(store, NewRenderer(os.Stdout, c.renderOpts...))
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	program := tea.NewProgram(model, programOpts...)
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(*viewerModel); ok && m.save {
		return saver.Save(m.store)
	}
	return nil
}

type viewerModel struct {
	store    *todo.Store
	renderer *Renderer
	cursor   int
	dirty    bool
	save     bool
	showHelp bool
	status   string

	cursorStyle lipgloss.Style
	helpStyle   lipgloss.Style
}

func newViewerModel(store *todo.Store, r *Renderer) *viewerModel {
	return &viewerModel{
		store:       store,
		renderer:    r,
		cursorStyle: r.lg.NewStyle().Bold(true),
		helpStyle:   r.lg.NewStyle().Faint(true),
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status = ""
	switch key.String() {
	case "esc", "ctrl+c":
		m.save = false
		return m, tea.Quit
	case "q":
		m.save = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.store.Len()-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		if m.store.Len() == 0 {
			m.status = "no tasks"
			break
		}
		if err := m.store.Complete(m.cursor); err != nil {
			m.status = err.Error()
			break
		}
		m.dirty = true
	case "d":
		if m.store.Len() == 0 {
			m.status = "no tasks"
			break
		}
		if err := m.store.Remove(m.cursor); err != nil {
			m.status = err.Error()
			break
		}
		m.dirty = true
		m.clampCursor()
	case "c":
		if !m.store.RemoveCompleted() {
			m.status = "no tasks marked as completed"
			break
		}
		m.dirty = true
		m.clampCursor()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *viewerModel) clampCursor() {
	if m.cursor >= m.store.Len() {
		m.cursor = max(0, m.store.Len()-1)
	}
}

func (m *viewerModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.store.Name(), m.dirty)

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	b.WriteString(m.renderer.ProgressLine(m.store.Name(), m.store.NumCompleted(), m.store.Len()))
	b.WriteString("\n\n")

	if m.store.Len() == 0 {
		b.WriteString("  No tasks.\n")
	}
	for i, t := range m.store.Tasks() {
		line := m.renderer.taskLine(i+1, t)
		if i == m.cursor {
			b.WriteString(m.cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("space complete | d remove | c clear completed | q save & quit | esc discard | ? help"))
	b.WriteString("\n")
	return b.String()
}

func writeTitle(b *strings.Builder, name string, dirty bool) {
	title := "Tasks: " + name
	if dirty {
		title += " *"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up, k         Move up\n")
	b.WriteString("  down, j       Move down\n")
	b.WriteString("  space, enter  Mark task completed\n")
	b.WriteString("  d             Remove task\n")
	b.WriteString("  c             Remove completed tasks\n")
	b.WriteString("  q             Save and quit\n")
	b.WriteString("  esc, ctrl+c   Quit without saving\n")
	b.WriteString("  h, ?          Toggle this help screen\n")
	b.WriteString("\nPress ? to return\n")
}
