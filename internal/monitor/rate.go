package monitor

import (
	"sync"
	"time"

	"github.com/Geun-Oh/ctxlog/internal/circular"
)

type bucket struct {
	second time.Time
	count  int64
}

// RateDetector tracks per-second event counts over a sliding window and
// flags spikes. Buckets live in a floating circular list sized to the
// window, so the oldest second is dropped as a new one starts.
type RateDetector struct {
	mu        sync.Mutex
	window    time.Duration
	threshold float64 // spike when latest > threshold * average
	buckets   *circular.List[bucket]
	now       func() time.Time
}

// NewRateDetector creates a rate detector with the given window duration and spike threshold.
// E.g., threshold=3.0 means alert when the current second exceeds 3x the average.
func NewRateDetector(window time.Duration, threshold float64) *RateDetector {
	if window < time.Second {
		window = 10 * time.Second
	}
	if threshold <= 0 {
		threshold = 3.0
	}
	// Capacity is at least one, so New cannot fail.
	buckets, _ := circular.New[bucket](int(window/time.Second), circular.Floating)
	return &RateDetector{
		window:    window,
		threshold: threshold,
		buckets:   buckets,
		now:       time.Now,
	}
}

// Record adds an event at the current time.
// Returns true if a spike is detected.
func (r *RateDetector) Record() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	second := r.now().Truncate(time.Second)
	if last, ok := r.latest(); ok && last.second.Equal(second) {
		last.count++
		if err := r.buckets.Set(r.buckets.Len()-1, last); err == nil {
			return r.isSpiking(second)
		}
	}
	r.buckets.Append(bucket{second: second, count: 1})
	return r.isSpiking(second)
}

// latest returns the newest bucket. Must be called with lock held.
func (r *RateDetector) latest() (bucket, bool) {
	n := r.buckets.Len()
	if n == 0 {
		return bucket{}, false
	}
	b, err := r.buckets.Get(n - 1)
	return b, err == nil
}

// CurrentRate returns events per second over the last window.
func (r *RateDetector) CurrentRate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	for _, b := range r.live(r.now().Truncate(time.Second)) {
		total += b.count
	}
	return float64(total) / r.window.Seconds()
}

// LatestSecondRate returns the event count in the current second.
func (r *RateDetector) LatestSecondRate() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	last, ok := r.latest()
	if ok && last.second.Equal(r.now().Truncate(time.Second)) {
		return last.count
	}
	return 0
}

// live returns the buckets inside the window ending at now. Must be called with lock held.
func (r *RateDetector) live(now time.Time) []bucket {
	cutoff := now.Add(-r.window)
	var out []bucket
	for _, b := range r.buckets.All() {
		if b.second.After(cutoff) {
			out = append(out, b)
		}
	}
	return out
}

// isSpiking compares the latest bucket with the average of the others. Must be called with lock held.
func (r *RateDetector) isSpiking(now time.Time) bool {
	buckets := r.live(now)
	if len(buckets) < 3 {
		return false
	}

	var sum int64
	for _, b := range buckets[:len(buckets)-1] {
		sum += b.count
	}
	avg := float64(sum) / float64(len(buckets)-1)
	if avg == 0 {
		return false
	}
	return float64(buckets[len(buckets)-1].count) > avg*r.threshold
}
