package window

import "github.com/Geun-Oh/ctxlog/internal/bounds"

// Window is an immutable view around one read position. It owns a copy of
// the buffer taken when it was produced.
type Window[T any] struct {
	data     []T
	position uint64
	limit    uint64 // source position at snapshot time
}

func newWindow[T any](data []T, position, limit uint64) *Window[T] {
	snapshot := make([]T, len(data))
	copy(snapshot, data)
	return &Window[T]{data: snapshot, position: position, limit: limit}
}

// Position returns the index of the window's element in the source.
func (w *Window[T]) Position() uint64 { return w.position }

// Size returns the window size W the window was produced with.
func (w *Window[T]) Size() int { return len(w.data) }

// HalfWidth returns (W-1)/2.
func (w *Window[T]) HalfWidth() int { return (len(w.data) - 1) / 2 }

// Get returns the element at Position.
func (w *Window[T]) Get() T {
	return w.at(w.position)
}

// Before returns up to n elements preceding Position, oldest first.
func (w *Window[T]) Before(n int) ([]T, error) {
	if err := w.check("window.Before", n); err != nil {
		return nil, err
	}
	lo, _ := w.clip(n, 0)
	return w.run(lo, w.position), nil
}

// After returns up to n elements following Position.
func (w *Window[T]) After(n int) ([]T, error) {
	if err := w.check("window.After", n); err != nil {
		return nil, err
	}
	_, hi := w.clip(0, n)
	return w.run(w.position+1, hi), nil
}

// Span returns the elements from Position-left to Position+right inclusive,
// clipped to what the source has produced.
func (w *Window[T]) Span(left, right int) ([]T, error) {
	if err := w.check("window.Span", left); err != nil {
		return nil, err
	}
	if err := w.check("window.Span", right); err != nil {
		return nil, err
	}
	lo, hi := w.clip(left, right)
	return w.run(lo, hi), nil
}

// check rejects any distance the window size can never serve, independent
// of how close Position is to either end of the source.
func (w *Window[T]) check(op string, n int) error {
	return bounds.Check(op, n, w.HalfWidth()+1)
}

// clip returns the half-open source range [lo, hi) for the given distances.
func (w *Window[T]) clip(left, right int) (lo, hi uint64) {
	lo = 0
	if l := uint64(left); l < w.position {
		lo = w.position - l
	}
	hi = w.position + uint64(right) + 1
	if hi > w.limit {
		hi = w.limit
	}
	return lo, hi
}

func (w *Window[T]) run(lo, hi uint64) []T {
	if hi <= lo {
		return []T{}
	}
	out := make([]T, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, w.at(i))
	}
	return out
}

func (w *Window[T]) at(i uint64) T {
	return w.data[i%uint64(len(w.data))]
}
