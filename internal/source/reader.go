package source

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// ReaderSource reads lines from an io.Reader such as os.Stdin.
type ReaderSource struct {
	name   string
	stream string
	r      io.Reader
	seq    atomic.Uint64
}

// NewStdinSource creates a source that reads from stdin (pipe mode).
func NewStdinSource() *ReaderSource {
	return NewReaderSource("stdin", os.Stdin)
}

// NewReaderSource creates a source reading r. name is used as both the
// stream and the source identifier.
func NewReaderSource(name string, r io.Reader) *ReaderSource {
	return &ReaderSource{name: name, stream: name, r: r}
}

// Name returns the source identifier.
func (s *ReaderSource) Name() string {
	return s.name
}

// Start reads r in the background and returns a channel of log entries.
func (s *ReaderSource) Start(ctx context.Context) (<-chan entry.LogEntry, error) {
	ch := make(chan entry.LogEntry, chanSize)
	sc := lineScanner{stream: s.stream, source: s.name, seq: &s.seq, now: time.Now}

	go func() {
		defer close(ch)
		sc.scan(ctx, s.r, ch)
	}()

	return ch, nil
}
