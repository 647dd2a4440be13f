// Package window turns a one-pass pull source into a forward-only sequence of
// windows, each giving bounded lookback and lookahead around a read position
// while holding only a fixed number of elements in memory.
//
// A Buffer of size W keeps ceil(W/2) elements of lookahead: it pre-fills that
// many elements when a source is bound and pulls exactly one more for every
// window it produces. Each Window carries a private snapshot of the backing
// array and can serve any span up to (W-1)/2 elements on either side of its
// position.
//
// A Buffer is not safe for concurrent use. Windows are immutable and may be
// read from any goroutine.
package window

import (
	"errors"
	"iter"
	"reflect"
)

var (
	// ErrInvalidSize is returned by New for a size below 1.
	ErrInvalidSize = errors.New("window: size must be positive")
	// ErrAlreadyBound is returned when Bind is called a second time.
	ErrAlreadyBound = errors.New("window: source already bound")
	// ErrNilSource is returned when Bind is given a nil source.
	ErrNilSource = errors.New("window: nil source")
)

// Buffer produces windows over a bound source.
type Buffer[T any] struct {
	data []T
	src  Source[T]

	sourcePos uint64 // elements pulled so far
	readPos   uint64 // windows produced so far
	exhausted bool
}

// New creates a buffer with window size w.
func New[T any](size int) (*Buffer[T], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return &Buffer[T]{data: make([]T, size)}, nil
}

// Bind attaches src and pre-fills ceil(W/2) elements, or fewer when the
// source is shorter.
func (b *Buffer[T]) Bind(src Source[T]) error {
	if b.src != nil {
		return ErrAlreadyBound
	}
	if isNil(src) {
		return ErrNilSource
	}
	b.src = src
	for i := 0; i < (len(b.data)+1)/2; i++ {
		if !b.pull() {
			break
		}
	}
	return nil
}

// Size returns the window size W.
func (b *Buffer[T]) Size() int { return len(b.data) }

// HalfWidth returns (W-1)/2, the widest span a window can serve on each side.
func (b *Buffer[T]) HalfWidth() int { return (len(b.data) - 1) / 2 }

// SourcePosition returns the number of elements pulled from the source.
func (b *Buffer[T]) SourcePosition() uint64 { return b.sourcePos }

// ReadPosition returns the number of windows produced.
func (b *Buffer[T]) ReadPosition() uint64 { return b.readPos }

// Exhausted reports whether the source has signalled its end.
func (b *Buffer[T]) Exhausted() bool { return b.exhausted }

// Next produces the window for the current read position and refills one
// element from the source. It returns false once every pulled element has
// been read and the source is exhausted, or when no source is bound.
func (b *Buffer[T]) Next() (*Window[T], bool) {
	if b.src == nil {
		return nil, false
	}
	if b.readPos == b.sourcePos && !b.pull() {
		return nil, false
	}

	w := newWindow(b.data, b.readPos, b.sourcePos)
	b.readPos++
	b.pull()
	return w, true
}

// All returns the lazy window sequence. It is single-pass: windows consumed
// by one iteration are not replayed by the next.
func (b *Buffer[T]) All() iter.Seq[*Window[T]] {
	return func(yield func(*Window[T]) bool) {
		for {
			w, ok := b.Next()
			if !ok || !yield(w) {
				return
			}
		}
	}
}

func (b *Buffer[T]) pull() bool {
	if b.exhausted {
		return false
	}
	v, ok := b.src.Next()
	if !ok {
		b.exhausted = true
		return false
	}
	b.data[b.sourcePos%uint64(len(b.data))] = v
	b.sourcePos++
	return true
}

// isNil also catches a nil func or pointer wrapped in the interface.
func isNil[T any](src Source[T]) bool {
	if src == nil {
		return true
	}
	switch v := reflect.ValueOf(src); v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
