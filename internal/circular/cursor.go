package circular

// cursor is the write position of a List. pos is the slot of the most recent
// append; wrapped flips once and stays set after the cursor passes the last
// slot for the first time.
type cursor struct {
	pos     int
	last    int
	moved   bool
	wrapped bool
}

// newCursor parks the cursor on the last slot so the first advance lands on 0.
func newCursor(capacity int) cursor {
	return cursor{pos: capacity - 1, last: capacity - 1}
}

// advance moves to the next slot and reports whether the move wrapped past
// the end of the array at least once.
func (c *cursor) advance() (int, bool) {
	if c.moved && c.pos == c.last {
		c.wrapped = true
	}
	c.moved = true
	if c.pos == c.last {
		c.pos = 0
	} else {
		c.pos++
	}
	return c.pos, c.wrapped
}

// translate maps a logical index to a physical slot.
func translate(mode Mode, c cursor, capacity, i int) int {
	if mode == SlotOverwrite {
		return i
	}
	if !c.wrapped {
		return i % capacity
	}
	return (c.pos + i + 1) % capacity
}
