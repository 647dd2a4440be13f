// Package bounds defines the index and span violation error shared by the
// fixed-capacity sequence types.
package bounds

import (
	"errors"
	"fmt"
)

// ErrViolation is matched by every *Error via errors.Is.
var ErrViolation = errors.New("bounds violation")

// Error reports an index or span that falls outside the range a structure
// can currently (or ever) service.
type Error struct {
	Op    string // operation that rejected the request, e.g. "circular.Get"
	Index int    // requested index or span width
	Limit int    // exclusive upper bound that applied to Index
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.Limit)
}

// Is lets errors.Is(err, ErrViolation) succeed for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrViolation
}

// Check returns a *Error when index is not in [0, limit).
func Check(op string, index, limit int) error {
	if index < 0 || index >= limit {
		return &Error{Op: op, Index: index, Limit: limit}
	}
	return nil
}
