package window

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/ctxlog/internal/bounds"
)

func sequence(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func bound(t *testing.T, size int, items []string) *Buffer[string] {
	t.Helper()
	b, err := New[string](size)
	require.NoError(t, err)
	require.NoError(t, b.Bind(FromSlice(items)))
	return b
}

// expected is the clipped source range the window at p should serve.
func expected(items []string, p, left, right int) []string {
	lo := max(p-left, 0)
	hi := min(p+right+1, len(items))
	return slices.Clone(items[lo:hi])
}

func TestNew_InvalidSize(t *testing.T) {
	_, err := New[int](0)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = New[int](-3)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestBuffer_BindTwice(t *testing.T) {
	b := bound(t, 3, sequence(5))
	assert.ErrorIs(t, b.Bind(FromSlice(sequence(2))), ErrAlreadyBound)
}

func TestBuffer_BindNil(t *testing.T) {
	tests := []struct {
		name string
		src  Source[string]
	}{
		{"nil interface", nil},
		{"nil func", SourceFunc[string](nil)},
		{"nil seq source", (*SeqSource[string])(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New[string](3)
			require.NoError(t, err)
			assert.ErrorIs(t, b.Bind(tt.src), ErrNilSource)

			_, ok := b.Next()
			assert.False(t, ok)

			require.NoError(t, b.Bind(FromSlice([]string{"a", "b"})))
			w, ok := b.Next()
			require.True(t, ok)
			assert.Equal(t, "a", w.Get())
		})
	}
}

func TestBuffer_Unbound(t *testing.T) {
	b, err := New[int](3)
	require.NoError(t, err)
	_, ok := b.Next()
	assert.False(t, ok)
}

func TestBuffer_Prefill(t *testing.T) {
	tests := []struct {
		size int
		n    int
		want uint64
	}{
		{1, 10, 1},
		{3, 10, 2},
		{4, 10, 2},
		{5, 10, 3},
		{9, 2, 2},
		{5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.size)+"/"+strconv.Itoa(tt.n), func(t *testing.T) {
			b := bound(t, tt.size, sequence(tt.n))
			assert.Equal(t, tt.want, b.SourcePosition())
			assert.Equal(t, uint64(0), b.ReadPosition())
		})
	}
}

func TestBuffer_ReproducesSourceOrder(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 5, 8, 13} {
		for _, n := range []int{0, 1, 2, 7, 40} {
			items := sequence(n)
			b := bound(t, size, items)

			var got []string
			for w := range b.All() {
				got = append(got, w.Get())
			}
			if n == 0 {
				assert.Empty(t, got, "size %d", size)
				continue
			}
			assert.Equal(t, items, got, "size %d, n %d", size, n)
			assert.Equal(t, b.SourcePosition(), b.ReadPosition())
			assert.True(t, b.Exhausted())
		}
	}
}

func TestBuffer_Lookahead(t *testing.T) {
	b := bound(t, 5, sequence(20))

	for w := range b.All() {
		assert.LessOrEqual(t, b.ReadPosition(), b.SourcePosition())
		if !b.Exhausted() {
			assert.Equal(t, uint64(3), b.SourcePosition()-b.ReadPosition(), "position %d", w.Position())
		}
	}
}

func TestBuffer_NotRestartable(t *testing.T) {
	b := bound(t, 3, sequence(4))

	count := 0
	for range b.All() {
		count++
		if count == 2 {
			break
		}
	}

	var rest []string
	for w := range b.All() {
		rest = append(rest, w.Get())
	}
	assert.Equal(t, []string{"2", "3"}, rest)

	_, ok := b.Next()
	assert.False(t, ok)
}

func TestWindow_SpanMatchesParts(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 5, 6, 7} {
		items := sequence(17)
		b := bound(t, size, items)
		half := b.HalfWidth()

		for w := range b.All() {
			p := int(w.Position())
			for left := 0; left <= half; left++ {
				for right := 0; right <= half; right++ {
					span, err := w.Span(left, right)
					require.NoError(t, err)

					before, err := w.Before(left)
					require.NoError(t, err)
					after, err := w.After(right)
					require.NoError(t, err)

					joined := append(append(before, w.Get()), after...)
					assert.Equal(t, joined, span, "size %d pos %d span(%d,%d)", size, p, left, right)
					assert.Equal(t, expected(items, p, left, right), span, "size %d pos %d span(%d,%d)", size, p, left, right)
				}
			}
		}
	}
}

func TestWindow_BeyondHalfWidth(t *testing.T) {
	b := bound(t, 5, sequence(12))

	for w := range b.All() {
		_, err := w.Before(3)
		assert.ErrorIs(t, err, bounds.ErrViolation)
		_, err = w.After(3)
		assert.ErrorIs(t, err, bounds.ErrViolation)
		_, err = w.Span(0, 3)
		assert.ErrorIs(t, err, bounds.ErrViolation)
		_, err = w.Span(3, 0)
		assert.ErrorIs(t, err, bounds.ErrViolation)
		_, err = w.Before(-1)
		assert.ErrorIs(t, err, bounds.ErrViolation)
	}
}

func TestWindow_Edges(t *testing.T) {
	b := bound(t, 5, sequence(4))

	first, ok := b.Next()
	require.True(t, ok)
	before, err := first.Before(2)
	require.NoError(t, err)
	assert.Empty(t, before)
	after, err := first.After(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, after)

	var last *Window[string]
	for w := range b.All() {
		last = w
	}
	require.NotNil(t, last)
	assert.Equal(t, uint64(3), last.Position())
	after, err = last.After(2)
	require.NoError(t, err)
	assert.Empty(t, after)
	before, err = last.Before(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, before)
}

func TestWindow_SnapshotIsDetached(t *testing.T) {
	items := sequence(30)
	b := bound(t, 3, items)

	var windows []*Window[string]
	for w := range b.All() {
		windows = append(windows, w)
	}

	for _, w := range windows {
		p := int(w.Position())
		span, err := w.Span(1, 1)
		require.NoError(t, err)
		assert.Equal(t, expected(items, p, 1, 1), span)
	}
}

func TestFromSeq(t *testing.T) {
	src := FromSeq(slices.Values([]int{1, 2, 3, 4, 5, 6}))
	defer src.Stop()

	b, err := New[int](3)
	require.NoError(t, err)
	require.NoError(t, b.Bind(src))

	w, ok := b.Next()
	require.True(t, ok)
	assert.Equal(t, 1, w.Get())
	w, ok = b.Next()
	require.True(t, ok)
	span, err := w.Span(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, span)
}

func TestFromChannel(t *testing.T) {
	ch := make(chan int, 4)
	for i := range 4 {
		ch <- i
	}
	close(ch)

	b, err := New[int](3)
	require.NoError(t, err)
	require.NoError(t, b.Bind(FromChannel(ch)))

	var got []int
	for w := range b.All() {
		got = append(got, w.Get())
	}
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}
