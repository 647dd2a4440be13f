package sink

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// TerminalSink writes lines in grep style: "seq:" marks a match, "seq-" a
// context line. Levels are colored when color is enabled.
type TerminalSink struct {
	w     io.Writer
	color bool

	dim    lipgloss.Style
	match  lipgloss.Style
	levels map[entry.Level]lipgloss.Style
}

// NewTerminalSink creates a sink that writes to the given writer.
func NewTerminalSink(w io.Writer, color bool) *TerminalSink {
	if w == nil {
		w = os.Stdout
	}
	r := lipgloss.NewRenderer(w)
	return &TerminalSink{
		w:     w,
		color: color,
		dim:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		match: r.NewStyle().Foreground(lipgloss.Color("#FF6600")).Bold(true),
		levels: map[entry.Level]lipgloss.Style{
			entry.LevelFatal: r.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true),
			entry.LevelError: r.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true),
			entry.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("#FFAA00")),
			entry.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("#44AAFF")),
			entry.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("#888888")),
		},
	}
}

// Write outputs a formatted line.
func (s *TerminalSink) Write(l *entry.Line) error {
	e := &l.Entry
	sep := "-"
	if l.Match {
		sep = ":"
	}
	prefix := fmt.Sprintf("%d%s", e.Seq, sep)
	ts := fmt.Sprintf("[%s][%s]", e.Timestamp.Format(time.RFC3339), e.Stream)
	level := ""
	if e.Level != entry.LevelUnknown {
		level = fmt.Sprintf("[%s]", e.Level)
	}

	if s.color {
		if l.Match {
			prefix = s.match.Render(prefix)
		}
		ts = s.dim.Render(ts)
		if level != "" {
			level = s.levels[e.Level].Render(level)
		}
	}

	_, err := fmt.Fprintf(s.w, "%s%s%s: %s\n", prefix, ts, level, e.Message)
	return err
}

// Separator prints grep's "--" hunk divider.
func (s *TerminalSink) Separator() error {
	sep := "--"
	if s.color {
		sep = s.dim.Render(sep)
	}
	_, err := fmt.Fprintln(s.w, sep)
	return err
}

// Flush is a no-op for terminal output.
func (s *TerminalSink) Flush() error { return nil }

// Close is a no-op for terminal output.
func (s *TerminalSink) Close() error { return nil }

// Name returns the sink identifier.
func (s *TerminalSink) Name() string { return "terminal" }
