package filter

import (
	"regexp"
	"slices"
	"strings"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// levelRegex finds level tokens in formats like [ERROR], level=error or "WARN:".
var levelRegex = regexp.MustCompile(`(?i)\b(DEBUG|TRACE|INFO|WARN(?:ING)?|ERR(?:OR)?|FATAL|PANIC|CRITICAL)\b`)

// DetectLevel returns the first level token found in msg.
func DetectLevel(msg string) entry.Level {
	match := levelRegex.FindString(msg)
	if match == "" {
		return entry.LevelUnknown
	}
	return entry.ParseLevel(match)
}

// LevelFilter passes entries whose level is one of an allowed set.
type LevelFilter struct {
	allowed map[entry.Level]bool
}

// NewLevelFilter creates a filter that passes entries matching any of the given levels.
func NewLevelFilter(levels ...entry.Level) *LevelFilter {
	allowed := make(map[entry.Level]bool, len(levels))
	for _, l := range levels {
		allowed[l] = true
	}
	return &LevelFilter{allowed: allowed}
}

// Match checks the entry's level, detecting it from the message when unset.
// The detected level is cached on the entry.
func (f *LevelFilter) Match(e *entry.LogEntry) bool {
	if e.Level == entry.LevelUnknown {
		e.Level = DetectLevel(e.Message)
	}
	return f.allowed[e.Level]
}

// Name returns the filter description with levels in severity order.
func (f *LevelFilter) Name() string {
	levels := make([]entry.Level, 0, len(f.allowed))
	for l := range f.allowed {
		levels = append(levels, l)
	}
	slices.Sort(levels)

	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}
	return "level:" + strings.Join(names, ",")
}
