// Package filter decides which log entries are matches and assembles the
// context lines printed around them.
package filter

import (
	"strings"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// Filter determines whether a LogEntry matches a filtering criterion.
type Filter interface {
	// Match returns true if the entry passes this filter.
	Match(e *entry.LogEntry) bool

	// Name returns a human-readable description of this filter.
	Name() string
}

// MatchMode controls how multiple filters are combined.
type MatchMode int

const (
	// MatchAny passes if ANY filter matches (OR logic).
	MatchAny MatchMode = iota
	// MatchAll passes only if ALL filters match (AND logic).
	MatchAll
)

// Chain combines multiple filters with a configurable match mode.
// An empty chain matches everything.
type Chain struct {
	filters []Filter
	mode    MatchMode
}

// NewChain creates a Chain with the given mode.
func NewChain(mode MatchMode, filters ...Filter) *Chain {
	return &Chain{filters: filters, mode: mode}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Match evaluates the chain against an entry.
func (c *Chain) Match(e *entry.LogEntry) bool {
	if c == nil || len(c.filters) == 0 {
		return true
	}

	if c.mode == MatchAll {
		for _, f := range c.filters {
			if !f.Match(e) {
				return false
			}
		}
		return true
	}
	for _, f := range c.filters {
		if f.Match(e) {
			return true
		}
	}
	return false
}

// Name lists the member filters joined by the chain's operator.
func (c *Chain) Name() string {
	op := " OR "
	if c.mode == MatchAll {
		op = " AND "
	}
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = f.Name()
	}
	return "(" + strings.Join(names, op) + ")"
}
