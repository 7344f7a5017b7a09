package tools

import (
	"strings"

	"github.com/dshills/xps/internal/engine/xps"
)

// Wildcard is the pattern byte that matches any run of bytes.
const Wildcard = '*'

// Default match messages.
const (
	DefaultMatched   = "Match!"
	DefaultUnmatched = "No match."
)

// Matcher reports whether lines match a pattern.
//
// A pattern without a wildcard matches any line containing it. A pattern
// with one or more '*' is matched against the whole line: the text before
// the first '*' must be a prefix, the text after the last '*' must be a
// suffix, and the pieces in between must appear in order without overlap.
type Matcher struct {
	pattern   xps.String
	segments  []xps.String
	glob      bool
	matched   xps.String
	unmatched xps.String
}

// MatchOption configures a Matcher.
type MatchOption func(*Matcher)

// WithMessages sets the lines written for matching and non-matching input.
func WithMessages(matched, unmatched string) MatchOption {
	return func(m *Matcher) {
		m.matched = xps.FromText(matched)
		m.unmatched = xps.FromText(unmatched)
	}
}

// NewMatcher creates a matcher for pattern.
func NewMatcher(pattern string, opts ...MatchOption) *Matcher {
	m := &Matcher{
		pattern:   xps.FromText(pattern),
		glob:      strings.IndexByte(pattern, Wildcard) >= 0,
		matched:   xps.FromText(DefaultMatched),
		unmatched: xps.FromText(DefaultUnmatched),
	}
	if m.glob {
		for _, seg := range strings.Split(pattern, string(Wildcard)) {
			m.segments = append(m.segments, xps.FromText(seg))
		}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsGlob reports whether the pattern contains a wildcard.
func (m *Matcher) IsGlob() bool {
	return m.glob
}

// Match reports whether line matches the pattern.
func (m *Matcher) Match(line xps.String) bool {
	if !m.glob {
		return xps.Contains(line, m.pattern)
	}
	return matchSegments(m.segments, line)
}

// Apply implements Filter. The result is the matched or unmatched message.
func (m *Matcher) Apply(line xps.String) (xps.String, error) {
	if m.Match(line) {
		return m.matched, nil
	}
	return m.unmatched, nil
}

// matchSegments matches the pieces of a split glob pattern against line.
// segments has at least two entries.
func matchSegments(segments []xps.String, line xps.String) bool {
	first := segments[0]
	last := segments[len(segments)-1]

	if !xps.HasPrefix(line, first) {
		return false
	}
	pos := first.Len()

	for _, seg := range segments[1 : len(segments)-1] {
		i, ok := xps.FindFrom(line, seg, pos)
		if !ok {
			return false
		}
		pos = i + seg.Len()
	}

	// The suffix must not overlap text already consumed.
	if line.Len()-last.Len() < pos {
		return false
	}
	return xps.HasSuffix(line, last)
}
