package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// jsonLine is the serialization format for JSON Lines output.
type jsonLine struct {
	Seq       uint64 `json:"seq"`
	Match     bool   `json:"match"`
	Timestamp string `json:"timestamp"`
	Stream    string `json:"stream"`
	Level     string `json:"level,omitempty"`
	Source    string `json:"source,omitempty"`
	Message   string `json:"message"`
}

// JSONSink writes lines as JSON Lines (one JSON object per line). Hunk
// separators are implied by gaps in seq and are not written.
type JSONSink struct {
	enc *json.Encoder
}

// NewJSONSink creates a JSON Lines sink writing to the given writer.
func NewJSONSink(w io.Writer) *JSONSink {
	if w == nil {
		w = os.Stdout
	}
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Write serializes a line as a single JSON object.
func (s *JSONSink) Write(l *entry.Line) error {
	e := &l.Entry
	jl := jsonLine{
		Seq:       e.Seq,
		Match:     l.Match,
		Timestamp: e.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		Stream:    e.Stream,
		Source:    e.Source,
		Message:   e.Message,
	}
	if e.Level != entry.LevelUnknown {
		jl.Level = e.Level.String()
	}
	return s.enc.Encode(jl)
}

// Separator is a no-op for JSON output.
func (s *JSONSink) Separator() error { return nil }

// Flush is a no-op for JSON sink.
func (s *JSONSink) Flush() error { return nil }

// Close is a no-op for JSON sink.
func (s *JSONSink) Close() error { return nil }

// Name returns the sink identifier.
func (s *JSONSink) Name() string { return "json" }

// FileSink writes lines to a file through a text or JSON formatter.
type FileSink struct {
	inner Sink
	file  *os.File
}

// NewFileSink opens path for appending. format is "json" or "text" (default).
func NewFileSink(path string, format string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", path, err)
	}

	var inner Sink
	switch format {
	case "json":
		inner = NewJSONSink(f)
	default:
		inner = NewTerminalSink(f, false)
	}

	return &FileSink{inner: inner, file: f}, nil
}

// Write delegates to the inner sink.
func (s *FileSink) Write(l *entry.Line) error {
	return s.inner.Write(l)
}

// Separator delegates to the inner sink.
func (s *FileSink) Separator() error {
	return s.inner.Separator()
}

// Flush syncs the file to disk.
func (s *FileSink) Flush() error {
	return s.file.Sync()
}

// Close flushes and closes the file.
func (s *FileSink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.file.Close()
}

// Name returns the sink identifier.
func (s *FileSink) Name() string {
	return "file:" + s.file.Name()
}
