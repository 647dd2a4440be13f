// Package source defines the Source interface and the line readers that feed
// the pipeline.
package source

import (
	"bufio"
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// Source reads log data from an input and emits LogEntry values on a channel.
// Implementations must close the returned channel when the source is exhausted
// or the context is cancelled.
type Source interface {
	// Start begins reading. The returned channel receives entries until the
	// input is exhausted or ctx is cancelled.
	Start(ctx context.Context) (<-chan entry.LogEntry, error)

	// Name returns a human-readable identifier for this source.
	Name() string
}

const (
	chanSize      = 256
	maxLineLength = 1024 * 1024
)

// lineScanner turns an io.Reader into entries sharing one sequence counter.
type lineScanner struct {
	stream string
	source string
	seq    *atomic.Uint64
	now    func() time.Time

	// parse splits a timestamp prefix off a line. Lines it rejects keep
	// their text and are stamped with now.
	parse func(line string) (time.Time, string, bool)
}

// scan sends one entry per line of r. It returns false if ctx was cancelled.
func (s lineScanner) scan(ctx context.Context, r io.Reader, ch chan<- entry.LogEntry) bool {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		ts, msg := s.stamp(scanner.Text())
		e := entry.LogEntry{
			Seq:       s.seq.Add(1),
			Timestamp: ts,
			Stream:    s.stream,
			Source:    s.source,
			Message:   msg,
		}
		select {
		case <-ctx.Done():
			return false
		case ch <- e:
		}
	}
	return true
}

func (s lineScanner) stamp(line string) (time.Time, string) {
	if s.parse != nil {
		if ts, msg, ok := s.parse(line); ok {
			return ts, msg
		}
	}
	return s.now(), line
}
