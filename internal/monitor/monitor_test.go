package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time           { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newDetector(window time.Duration, threshold float64) (*RateDetector, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRateDetector(window, threshold)
	r.now = c.now
	return r, c
}

func TestStats(t *testing.T) {
	s := NewStats()
	for range 1500 {
		s.RecordLine()
	}
	s.RecordMatch()
	s.RecordMatch()
	s.RecordEmitted(6)

	assert.Equal(t, uint64(1500), s.Total())
	assert.Equal(t, uint64(2), s.Matched())
	assert.Equal(t, uint64(6), s.Emitted())

	summary := s.Summary()
	assert.Contains(t, summary, "Total lines:   1,500")
	assert.Contains(t, summary, "Matched lines: 2 (0.1%)")
	assert.Contains(t, summary, "Emitted lines: 6")
}

func TestRateDetector_Defaults(t *testing.T) {
	r := NewRateDetector(0, 0)
	assert.Equal(t, 10*time.Second, r.window)
	assert.Equal(t, 3.0, r.threshold)
	assert.Equal(t, 10, r.buckets.Cap())
}

func TestRateDetector_Spike(t *testing.T) {
	r, c := newDetector(10*time.Second, 3.0)

	for range 3 {
		for range 2 {
			assert.False(t, r.Record())
		}
		c.advance(time.Second)
	}

	spiked := false
	for range 10 {
		spiked = r.Record() || spiked
	}
	assert.True(t, spiked)
	assert.Equal(t, int64(10), r.LatestSecondRate())
}

func TestRateDetector_WindowSlides(t *testing.T) {
	r, c := newDetector(3*time.Second, 3.0)

	for range 6 {
		r.Record()
		r.Record()
		c.advance(time.Second)
	}
	assert.Equal(t, 3, r.buckets.Len())
	assert.Equal(t, int64(0), r.LatestSecondRate())
	// Only the last two seconds fall inside the window ending now.
	assert.InDelta(t, 4.0/3.0, r.CurrentRate(), 1e-9)

	c.advance(time.Hour)
	assert.Zero(t, r.CurrentRate())
}

func TestRateDetector_SameSecondAccumulates(t *testing.T) {
	tests := []struct {
		name    string
		seconds int // distinct seconds recorded before the burst
		burst   int
		want    int
	}{
		{"empty", 0, 5, 1},
		{"filling", 1, 4, 2},
		{"full", 3, 6, 3},
		{"wrapped", 7, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := newDetector(3*time.Second, 100)
			for range tt.seconds {
				r.Record()
				c.advance(time.Second)
			}
			for range tt.burst {
				r.Record()
			}
			assert.Equal(t, tt.want, r.buckets.Len())
			assert.Equal(t, int64(tt.burst), r.LatestSecondRate())

			last, ok := r.latest()
			assert.True(t, ok)
			assert.Equal(t, int64(tt.burst), last.count)
		})
	}
}
