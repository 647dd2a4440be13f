// Package circular provides a fixed-capacity, array-backed ordered list with
// two overwrite disciplines.
//
// In SlotOverwrite mode logical indices are physical slots: once the write
// cursor has wrapped, appends replace slots round-robin and the list keeps the
// order of the backing array. In Floating mode the list behaves as a FIFO
// sliding window: index 0 is always the oldest surviving element.
//
// A List is not safe for concurrent use.
package circular

import (
	"errors"
	"fmt"
	"iter"

	"github.com/Geun-Oh/ctxlog/internal/bounds"
)

// ErrInvalidCapacity is returned by New for a capacity below 1.
var ErrInvalidCapacity = errors.New("circular: capacity must be positive")

// Mode selects the append and index-translation behavior of a List.
type Mode int

const (
	// SlotOverwrite keeps logical index == physical slot.
	SlotOverwrite Mode = iota
	// Floating remaps indices so that index 0 is the oldest element.
	Floating
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case SlotOverwrite:
		return "slot"
	case Floating:
		return "floating"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "slot" or "floating" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "slot", "overwrite":
		return SlotOverwrite, nil
	case "floating", "fifo":
		return Floating, nil
	default:
		return 0, fmt.Errorf("circular: unknown mode %q", s)
	}
}

// List is a fixed-capacity ordered list backed by a single slice.
type List[T any] struct {
	slots []T
	size  int
	mode  Mode
	w     cursor
}

// New creates an empty list holding at most capacity elements.
func New[T any](capacity int, mode Mode) (*List[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if mode != SlotOverwrite && mode != Floating {
		return nil, fmt.Errorf("circular: unknown mode %d", int(mode))
	}
	return &List[T]{
		slots: make([]T, capacity),
		mode:  mode,
		w:     newCursor(capacity),
	}, nil
}

// Len returns the number of populated logical slots.
func (l *List[T]) Len() int { return l.size }

// Cap returns the fixed capacity.
func (l *List[T]) Cap() int { return len(l.slots) }

// Mode returns the discipline chosen at construction.
func (l *List[T]) Mode() Mode { return l.mode }

// Full reports whether every slot is populated.
func (l *List[T]) Full() bool { return l.size == len(l.slots) }

// Get returns the element at logical index i, 0 <= i < Len().
func (l *List[T]) Get(i int) (T, error) {
	if err := bounds.Check("circular.Get", i, l.size); err != nil {
		var zero T
		return zero, err
	}
	return l.slots[l.slot(i)], nil
}

// Set replaces the element at logical index i. Any index below Cap() is
// accepted, including slots not yet covered by Len().
func (l *List[T]) Set(i int, v T) error {
	if err := bounds.Check("circular.Set", i, len(l.slots)); err != nil {
		return err
	}
	l.slots[l.slot(i)] = v
	return nil
}

// Insert places v at logical index i, shifting later elements one position
// right. On a full list the last element is dropped so Len never exceeds Cap.
func (l *List[T]) Insert(i int, v T) error {
	if i > l.size {
		return &bounds.Error{Op: "circular.Insert", Index: i, Limit: l.size + 1}
	}
	if err := bounds.Check("circular.Insert", i, len(l.slots)); err != nil {
		return err
	}
	l.insert(i, v)
	return nil
}

// Append adds v at the write cursor. Overwriting a populated slot once the
// cursor has wrapped is normal operation, not an error.
func (l *List[T]) Append(v T) {
	p, exceeded := l.w.advance()

	if l.mode == Floating {
		if l.Full() {
			l.slots[l.slot(l.size-1)] = v
			return
		}
		l.insert(l.size, v)
		return
	}

	if exceeded {
		l.slots[l.slot(p)] = v
		return
	}
	l.insert(p, v)
}

// Remove deletes and returns the element at logical index i, shifting later
// elements one position left.
func (l *List[T]) Remove(i int) (T, error) {
	var zero T
	if err := bounds.Check("circular.Remove", i, l.size); err != nil {
		return zero, err
	}

	removed := l.slots[l.slot(i)]
	for k := i; k < l.size-1; k++ {
		l.slots[l.slot(k)] = l.slots[l.slot(k+1)]
	}
	l.slots[l.slot(l.size-1)] = zero
	l.size--
	return removed, nil
}

// Values returns a copy of the populated elements in logical order.
func (l *List[T]) Values() []T {
	out := make([]T, l.size)
	for i := range out {
		out[i] = l.slots[l.slot(i)]
	}
	return out
}

// All iterates the populated elements in logical order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < l.size; i++ {
			if !yield(i, l.slots[l.slot(i)]) {
				return
			}
		}
	}
}

// insert shifts from the last populated slot down to i without bounds checks.
// Append may target a slot beyond Len() in SlotOverwrite mode after a Remove.
func (l *List[T]) insert(i int, v T) {
	last := l.size
	if last == len(l.slots) {
		last--
	}
	for k := last; k > i; k-- {
		l.slots[l.slot(k)] = l.slots[l.slot(k-1)]
	}
	l.slots[l.slot(i)] = v
	if l.size < len(l.slots) {
		l.size++
	}
}

func (l *List[T]) slot(i int) int {
	return translate(l.mode, l.w, len(l.slots), i)
}
