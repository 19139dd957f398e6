// Package ui renders task groups for the terminal: plain listings, progress
// bars, and an interactive viewer.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nibzard/tasks-go/internal/todo"
)

// DefaultBarWidth is the progress bar width used when none is configured.
const DefaultBarWidth = 60

// Bar characters: filled, head, empty.
const (
	barFill  = "#"
	barHead  = "|"
	barEmpty = "-"
)

// doneMarker tags completed tasks when styling is unavailable.
const doneMarker = " (done)"

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithColor enables or disables styled output.
func WithColor(enabled bool) RenderOption {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// WithBarWidth sets the progress bar width in cells.
func WithBarWidth(width int) RenderOption {
	return func(r *Renderer) {
		if width > 0 {
			r.barWidth = width
		}
	}
}

// WithColorProfile forces a terminal color profile instead of detecting
// one from the output.
func WithColorProfile(p termenv.Profile) RenderOption {
	return func(r *Renderer) {
		r.profile = &p
	}
}

// Renderer writes listings and progress bars to one output.
type Renderer struct {
	out      io.Writer
	color    bool
	barWidth int
	profile  *termenv.Profile

	lg     *lipgloss.Renderer
	strike lipgloss.Style
	filled lipgloss.Style
	empty  lipgloss.Style
}

// NewRenderer creates a Renderer for w. A nil writer means stdout.
func NewRenderer(w io.Writer, opts ...RenderOption) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	r := &Renderer{
		out:      w,
		color:    true,
		barWidth: DefaultBarWidth,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.lg = lipgloss.NewRenderer(w)
	switch {
	case !r.color:
		r.lg.SetColorProfile(termenv.Ascii)
	case r.profile != nil:
		r.lg.SetColorProfile(*r.profile)
	}
	r.strike = r.lg.NewStyle().Strikethrough(true)
	r.filled = r.lg.NewStyle().Foreground(lipgloss.Color("6"))
	r.empty = r.lg.NewStyle().Foreground(lipgloss.Color("8"))
	return r
}

// Styled reports whether output carries terminal styling.
func (r *Renderer) Styled() bool {
	return r.lg.ColorProfile() != termenv.Ascii
}

// RenderList writes one "<n>: <content>" line per task, numbered from 1.
func (r *Renderer) RenderList(s *todo.Store) error {
	var b strings.Builder
	for i, t := range s.Tasks() {
		b.WriteString(r.taskLine(i+1, t))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

// RenderProgress writes the completion summary followed by the group's bar.
func (r *Renderer) RenderProgress(s *todo.Store) error {
	total, done := s.Len(), s.NumCompleted()
	var b strings.Builder
	fmt.Fprintf(&b, "total tasks: %d, completed tasks: %d, tasks remaining: %d\n", total, done, total-done)
	b.WriteString(r.ProgressLine(s.Name(), done, total))
	b.WriteByte('\n')
	_, err := io.WriteString(r.out, b.String())
	return err
}

// ProgressLine formats "<name>: [bar] done/total".
func (r *Renderer) ProgressLine(name string, done, total int) string {
	return fmt.Sprintf("%s: [%s] %d/%d", name, r.bar(done, total), done, total)
}

func (r *Renderer) bar(done, total int) string {
	fill, head, rest := barSegments(done, total, r.barWidth)
	if !r.Styled() {
		return fill + head + rest
	}
	return r.filled.Render(fill+head) + r.empty.Render(rest)
}

func (r *Renderer) taskLine(n int, t todo.Task) string {
	prefix := fmt.Sprintf("%d: ", n)
	content := indentContinuation(t.Content, len(prefix))
	if !t.Completed {
		return prefix + content
	}
	if !r.Styled() {
		return prefix + content + doneMarker
	}
	return prefix + r.strike.Render(content)
}

// ProgressBar returns an unstyled bar of width cells for done out of total.
func ProgressBar(done, total, width int) string {
	fill, head, rest := barSegments(done, total, width)
	return fill + head + rest
}

func barSegments(done, total, width int) (fill, head, rest string) {
	if width <= 0 {
		width = DefaultBarWidth
	}
	if total <= 0 {
		return "", "", strings.Repeat(barEmpty, width)
	}
	done = max(0, min(done, total))
	n := done * width / total
	if n >= width {
		return strings.Repeat(barFill, width), "", ""
	}
	return strings.Repeat(barFill, n), barHead, strings.Repeat(barEmpty, width-n-1)
}

// indentContinuation aligns the lines of multi-line content under the first.
func indentContinuation(content string, indent int) string {
	if !strings.Contains(content, "\n") {
		return content
	}
	return strings.ReplaceAll(content, "\n", "\n"+strings.Repeat(" ", indent))
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
