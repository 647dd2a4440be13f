package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Geun-Oh/ctxlog/internal/entry"
)

// KeywordFilter matches entries whose message contains a keyword.
type KeywordFilter struct {
	keyword    string
	ignoreCase bool
}

// NewKeywordFilter creates a case-sensitive keyword filter.
func NewKeywordFilter(keyword string) *KeywordFilter {
	return &KeywordFilter{keyword: keyword}
}

// NewFoldedKeywordFilter creates a case-insensitive keyword filter.
func NewFoldedKeywordFilter(keyword string) *KeywordFilter {
	return &KeywordFilter{keyword: strings.ToLower(keyword), ignoreCase: true}
}

// Match returns true if the entry message contains the keyword.
func (f *KeywordFilter) Match(e *entry.LogEntry) bool {
	if f.ignoreCase {
		return strings.Contains(strings.ToLower(e.Message), f.keyword)
	}
	return strings.Contains(e.Message, f.keyword)
}

// Name returns the filter description.
func (f *KeywordFilter) Name() string {
	return "keyword:" + f.keyword
}

// RegexFilter matches entries against a regular expression compiled once.
type RegexFilter struct {
	re *regexp.Regexp
}

// NewRegexFilter compiles pattern. Returns an error if it is invalid.
func NewRegexFilter(pattern string) (*RegexFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return &RegexFilter{re: re}, nil
}

// Match returns true if the entry message matches the regex.
func (f *RegexFilter) Match(e *entry.LogEntry) bool {
	return f.re.MatchString(e.Message)
}

// Name returns the filter description.
func (f *RegexFilter) Name() string {
	return "regex:" + f.re.String()
}

// ExcludeFilter passes entries that contain none of its patterns.
type ExcludeFilter struct {
	patterns []string
}

// NewExcludeFilter creates a filter that rejects entries containing any of the patterns.
func NewExcludeFilter(patterns ...string) *ExcludeFilter {
	return &ExcludeFilter{patterns: patterns}
}

// Match returns false if the entry contains an excluded pattern.
func (f *ExcludeFilter) Match(e *entry.LogEntry) bool {
	for _, p := range f.patterns {
		if strings.Contains(e.Message, p) {
			return false
		}
	}
	return true
}

// Name returns the filter description.
func (f *ExcludeFilter) Name() string {
	return "exclude:" + strings.Join(f.patterns, ",")
}
