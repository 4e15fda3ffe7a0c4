// Package tui hosts a weft system inside a Bubble Tea program. The
// adapter translates terminal input into dispatched events and renders
// frames by dispatching a RenderEvent the controller prints into, so the
// controller stays a plain function with no knowledge of the terminal.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/weftui/weft"
)

// KeyEvent is dispatched globally for every key press the adapter does
// not consume itself. Key holds the Bubble Tea name of the key ("a",
// "enter", "ctrl+c", ...).
type KeyEvent struct {
	Key string
}

// RenderEvent is dispatched once per frame. Controllers append their
// visible content with Print; the adapter assembles and styles the frame.
type RenderEvent struct {
	lines []string
}

// Print appends one line to the frame.
func (e *RenderEvent) Print(line string) {
	e.lines = append(e.lines, line)
}

// RefreshMsg asks the adapter to run a refresh pass. Hosts deliver it via
// Program.Send when work completes outside the input loop (typically from
// an async reporter's goroutine handoff).
type RefreshMsg struct{}

// Theme carries the styles the adapter applies around controller output.
type Theme struct {
	Title  lipgloss.Style
	Body   lipgloss.Style
	Footer lipgloss.Style
}

// DefaultTheme returns the stock theme, degrading to unstyled text on
// terminals without color support.
func DefaultTheme() Theme {
	if termenv.ColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return Theme{Title: plain, Body: plain, Footer: plain}
	}
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Body:   lipgloss.NewStyle(),
		Footer: lipgloss.NewStyle().Faint(true),
	}
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the line rendered above controller output.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithFooter sets the line rendered below controller output.
func WithFooter(footer string) Option {
	return func(m *Model) { m.footer = footer }
}

// WithTheme overrides the default theme.
func WithTheme(theme Theme) Option {
	return func(m *Model) { m.theme = theme }
}

// WithQuitKeys overrides the keys that end the program. The default is
// "q" and "ctrl+c".
func WithQuitKeys(keys ...string) Option {
	return func(m *Model) { m.quitKeys = keys }
}

// Model is a tea.Model driving a weft system. Construct it with NewModel
// and hand it to tea.NewProgram, or use Run.
type Model struct {
	sys      *weft.System
	theme    Theme
	title    string
	footer   string
	quitKeys []string
}

// NewModel wraps sys for Bubble Tea. An initial refresh runs immediately
// so the first frame sees initialized state.
func NewModel(sys *weft.System, opts ...Option) Model {
	m := Model{
		sys:      sys,
		theme:    DefaultTheme(),
		quitKeys: []string{"q", "ctrl+c"},
	}
	for _, o := range opts {
		o(&m)
	}
	sys.Refresh()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		for _, q := range m.quitKeys {
			if key == q {
				return m, tea.Quit
			}
		}
		m.sys.DispatchEvent(KeyEvent{Key: key})
	case RefreshMsg:
		// Handled below; the message only exists to wake the loop.
	}
	if m.sys.RefreshNeeded() {
		m.sys.Refresh()
	}
	return m, nil
}

func (m Model) View() string {
	frame := &RenderEvent{}
	m.sys.DispatchEvent(frame)

	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.theme.Title.Render(m.title))
		b.WriteByte('\n')
	}
	b.WriteString(m.theme.Body.Render(strings.Join(frame.lines, "\n")))
	if m.footer != "" {
		b.WriteByte('\n')
		b.WriteString(m.theme.Footer.Render(m.footer))
	}
	return b.String()
}

// Run wraps sys in a model and runs it to completion.
func Run(sys *weft.System, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(sys, opts...)).Run()
	return err
}
