package filter

import (
	"fmt"

	"github.com/Geun-Oh/ctxlog/internal/entry"
	"github.com/Geun-Oh/ctxlog/internal/window"
)

// Hunk is a contiguous run of output lines around one or more matches.
type Hunk struct {
	Lines []entry.Line
	// Gap is set when lines were skipped since the previous hunk (grep's "--").
	Gap bool
}

// Context provides grep-like --before / --after context lines. It reads the
// lines around a match from a window, so after-context is available as soon
// as the match itself is seen.
type Context struct {
	filter  Filter
	before  int
	after   int
	next    uint64 // first position not yet emitted
	emitted bool
}

// NewContext wraps f with before/after context lines.
func NewContext(f Filter, before, after int) (*Context, error) {
	if before < 0 || after < 0 {
		return nil, fmt.Errorf("filter: negative context (before=%d, after=%d)", before, after)
	}
	return &Context{filter: f, before: before, after: after}, nil
}

// WindowSize is the smallest window that serves both context widths.
func (c *Context) WindowSize() int {
	return 2*max(c.before, c.after) + 1
}

// Process returns the hunk for w when its entry matches. Lines already
// emitted by an earlier hunk are not repeated. A context line that matches
// on its own is flagged as a match.
func (c *Context) Process(w *window.Window[entry.LogEntry]) (Hunk, bool, error) {
	center := w.Get()
	if !c.filter.Match(&center) {
		return Hunk{}, false, nil
	}

	before, err := w.Before(c.before)
	if err != nil {
		return Hunk{}, false, fmt.Errorf("filter: context before: %w", err)
	}
	after, err := w.After(c.after)
	if err != nil {
		return Hunk{}, false, fmt.Errorf("filter: context after: %w", err)
	}

	pos := w.Position()
	start := pos - uint64(len(before))
	hunk := Hunk{Gap: c.emitted && start > c.next}

	run := append(append(before, center), after...)
	for i := range run {
		p := start + uint64(i)
		if c.emitted && p < c.next {
			continue
		}
		match := i == len(before) || c.filter.Match(&run[i])
		hunk.Lines = append(hunk.Lines, entry.Line{Entry: run[i], Match: match})
	}

	c.next = pos + uint64(len(after)) + 1
	c.emitted = true
	return hunk, true, nil
}
