// Package sink defines the Sink interface for pipeline output.
package sink

import (
	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// Sink receives selected lines and writes them to an output destination.
type Sink interface {
	// Write outputs a single line.
	Write(l *entry.Line) error

	// Separator marks skipped lines between two hunks.
	Separator() error

	// Flush ensures all buffered output is written.
	Flush() error

	// Close releases resources held by the sink.
	Close() error

	// Name returns a human-readable identifier for this sink.
	Name() string
}
