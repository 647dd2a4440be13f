package window

import "iter"

// Source is a one-shot pull source. Next returns false once the source is
// exhausted and must keep returning false afterwards.
type Source[T any] interface {
	Next() (T, bool)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc[T any] func() (T, bool)

// Next calls f.
func (f SourceFunc[T]) Next() (T, bool) { return f() }

// FromSlice returns a source that yields the elements of items in order.
func FromSlice[T any](items []T) Source[T] {
	i := 0
	return SourceFunc[T](func() (T, bool) {
		if i >= len(items) {
			var zero T
			return zero, false
		}
		v := items[i]
		i++
		return v, true
	})
}

// FromChannel returns a source that receives from ch until it is closed.
func FromChannel[T any](ch <-chan T) Source[T] {
	return SourceFunc[T](func() (T, bool) {
		v, ok := <-ch
		return v, ok
	})
}

// SeqSource pulls from an iter.Seq. Stop must be called if the source is
// abandoned before exhaustion.
type SeqSource[T any] struct {
	next func() (T, bool)
	stop func()
}

// FromSeq converts a push iterator into a pull source.
func FromSeq[T any](seq iter.Seq[T]) *SeqSource[T] {
	next, stop := iter.Pull(seq)
	return &SeqSource[T]{next: next, stop: stop}
}

// Next pulls the next value from the underlying sequence.
func (s *SeqSource[T]) Next() (T, bool) { return s.next() }

// Stop releases the underlying iterator.
func (s *SeqSource[T]) Stop() { s.stop() }
