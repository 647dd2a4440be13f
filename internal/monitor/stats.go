// Package monitor collects pipeline counters and detects rate spikes.
package monitor

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats collects pipeline processing metrics in a lock-free manner.
type Stats struct {
	lines     atomic.Uint64
	matches   atomic.Uint64
	emitted   atomic.Uint64
	startTime time.Time
}

// NewStats creates a new statistics collector.
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// RecordLine counts one line read from the source.
func (s *Stats) RecordLine() { s.lines.Add(1) }

// RecordMatch counts one matching line.
func (s *Stats) RecordMatch() { s.matches.Add(1) }

// RecordEmitted counts n lines written to the sinks, context included.
func (s *Stats) RecordEmitted(n int) { s.emitted.Add(uint64(n)) }

// Total returns the number of lines read.
func (s *Stats) Total() uint64 { return s.lines.Load() }

// Matched returns the number of matching lines.
func (s *Stats) Matched() uint64 { return s.matches.Load() }

// Emitted returns the number of lines written, context included.
func (s *Stats) Emitted() uint64 { return s.emitted.Load() }

// Elapsed returns the time since monitoring started.
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.startTime)
}

// Rate returns lines read per second since start.
func (s *Stats) Rate() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(s.Total()) / elapsed
}

// Summary returns a formatted summary string.
func (s *Stats) Summary() string {
	total := s.Total()
	matched := s.Matched()

	matchRate := float64(0)
	if total > 0 {
		matchRate = float64(matched) / float64(total) * 100
	}

	return fmt.Sprintf(
		"── Summary ──\n"+
			"  Total lines:   %s\n"+
			"  Matched lines: %s (%.1f%%)\n"+
			"  Emitted lines: %s\n"+
			"  Duration:      %s\n"+
			"  Throughput:    %s lines/s\n"+
			"─────────────",
		humanize.Comma(int64(total)),
		humanize.Comma(int64(matched)), matchRate,
		humanize.Comma(int64(s.Emitted())),
		s.Elapsed().Round(time.Millisecond),
		humanize.Comma(int64(s.Rate())),
	)
}
