package source

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// FileSource reads log lines from a file, optionally following new writes (tail -f).
type FileSource struct {
	path     string
	follow   bool
	interval time.Duration
	seq      atomic.Uint64
}

// NewFileSource creates a source that reads from a file.
// If follow is true, it continues reading as new lines are appended.
func NewFileSource(path string, follow bool) *FileSource {
	return &FileSource{
		path:     path,
		follow:   follow,
		interval: 100 * time.Millisecond,
	}
}

// Name returns the source identifier.
func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

// Start opens the file and returns a channel of log entries.
func (s *FileSource) Start(ctx context.Context) (<-chan entry.LogEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", s.path, err)
	}

	ch := make(chan entry.LogEntry, chanSize)
	sc := lineScanner{stream: "file", source: s.Name(), seq: &s.seq, now: time.Now}

	go func() {
		defer close(ch)
		defer f.Close()

		for {
			if !sc.scan(ctx, f, ch) || !s.follow {
				return
			}

			// The file offset stays at EOF; poll for appended data.
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.interval):
			}
		}
	}()

	return ch, nil
}
