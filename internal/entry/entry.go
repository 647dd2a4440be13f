// Package entry defines the log line types passed between sources, filters
// and sinks.
package entry

import (
	"fmt"
	"strings"
	"time"
)

// Level represents log severity levels.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// String returns the string representation of a Level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name or common alias to a Level. Case-insensitive.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG", "TRACE":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR", "ERR":
		return LevelError
	case "FATAL", "PANIC", "CRITICAL":
		return LevelFatal
	default:
		return LevelUnknown
	}
}

// LogEntry is one line read from a source.
type LogEntry struct {
	Seq       uint64 // 1-based, per source
	Timestamp time.Time
	Stream    string // stdout, stderr, file, docker
	Source    string
	Level     Level
	Message   string
}

// Format returns the entry as "[ts][stream][LEVEL]: message".
func (e *LogEntry) Format() string {
	ts := e.Timestamp.Format(time.RFC3339)
	if e.Level != LevelUnknown {
		return fmt.Sprintf("[%s][%s][%s]: %s", ts, e.Stream, e.Level, e.Message)
	}
	return fmt.Sprintf("[%s][%s]: %s", ts, e.Stream, e.Message)
}

// Line is an entry selected for output, either as a match or as context
// around one.
type Line struct {
	Entry LogEntry
	Match bool
}
