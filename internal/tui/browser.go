// Package tui provides an interactive browser that steps through log windows.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Geun-Oh/ctxlog/internal/entry"
	"github.com/Geun-Oh/ctxlog/internal/window"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#353533"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// windowMsg carries the result of pulling the next window.
// The source position is sampled inside the command so the model never
// touches the buffer while a pull is in flight.
type windowMsg struct {
	w      *window.Window[entry.LogEntry]
	ok     bool
	pulled uint64
}

// Browser is the bubbletea model. It shows one window at a time with a
// configurable span of context around the current line.
type Browser struct {
	buf    *window.Buffer[entry.LogEntry]
	source string

	cur     *window.Window[entry.LogEntry]
	pulled  uint64
	half    int
	span    int
	loading bool // a pull is in flight; the buffer is not safe for concurrent use
	done    bool
	err     error

	width  int
	height int
}

// NewBrowser creates a browser over a bound buffer. The initial span is the
// widest the buffer can serve.
func NewBrowser(buf *window.Buffer[entry.LogEntry], source string) Browser {
	return Browser{
		buf:     buf,
		source:  source,
		pulled:  buf.SourcePosition(),
		half:    buf.HalfWidth(),
		span:    buf.HalfWidth(),
		loading: true,
	}
}

// Init pulls the first window.
func (m Browser) Init() tea.Cmd {
	return pull(m.buf)
}

func pull(buf *window.Buffer[entry.LogEntry]) tea.Cmd {
	return func() tea.Msg {
		w, ok := buf.Next()
		return windowMsg{w: w, ok: ok, pulled: buf.SourcePosition()}
	}
}

// Update handles messages.
func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case windowMsg:
		m.loading = false
		m.pulled = msg.pulled
		if !msg.ok {
			m.done = true
			return m, nil
		}
		m.cur = msg.w

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "j", "n", "down", " ":
			if m.loading || m.done {
				return m, nil
			}
			m.loading = true
			return m, pull(m.buf)
		case "+", "=", "right":
			if m.span < m.half {
				m.span++
			}
		case "-", "left":
			if m.span > 0 {
				m.span--
			}
		}
	}
	return m, nil
}

// View renders the current window.
func (m Browser) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ctxlog · " + m.source))
	b.WriteString("\n\n")

	switch {
	case m.cur == nil && m.done:
		b.WriteString(dimStyle.Render("(no input)"))
		b.WriteString("\n")
	case m.cur == nil:
		b.WriteString(dimStyle.Render("loading…"))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderWindow())
	}

	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/space: next · +/-: span · q: quit"))
	return b.String()
}

func (m Browser) renderWindow() string {
	lines, err := m.cur.Span(m.span, m.span)
	if err != nil {
		return errorStyle.Render(err.Error()) + "\n"
	}
	before := int(min(uint64(m.span), m.cur.Position()))

	var b strings.Builder
	for i := range lines {
		text := lines[i].Format()
		if m.width > 0 {
			text = lipgloss.NewStyle().MaxWidth(m.width).Render(text)
		}
		if i == before {
			b.WriteString(highlightStyle.Render("> " + text))
		} else {
			b.WriteString(dimStyle.Render("  " + text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Browser) status() string {
	pos := "-"
	if m.cur != nil {
		pos = fmt.Sprintf("%d", m.cur.Position()+1)
	}
	state := ""
	if m.done {
		state = " · end of input"
	}
	return fmt.Sprintf(" window %s · read %d · span ±%d of ±%d%s ",
		pos, m.pulled, m.span, m.half, state)
}
