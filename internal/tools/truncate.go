package tools

import (
	"fmt"

	"github.com/dshills/xps/internal/engine/xps"
)

// Default truncation geometry.
const (
	DefaultLimit    = 20
	DefaultHead     = 10
	DefaultTail     = 7
	DefaultEllipsis = "..."
)

// Truncator shortens lines longer than Limit bytes to the first Head bytes,
// the ellipsis, and the last Tail bytes. Shorter lines pass through.
type Truncator struct {
	limit    int
	head     int
	tail     int
	ellipsis xps.String
}

// NewTruncator creates a truncator.
// Returns ErrInvalidGeometry if a size is negative or head+tail exceeds limit.
func NewTruncator(limit, head, tail int, ellipsis string) (*Truncator, error) {
	if limit < 0 || head < 0 || tail < 0 {
		return nil, fmt.Errorf("%w: negative size (limit=%d head=%d tail=%d)", ErrInvalidGeometry, limit, head, tail)
	}
	if head+tail > limit {
		return nil, fmt.Errorf("%w: head %d + tail %d exceeds limit %d", ErrInvalidGeometry, head, tail, limit)
	}
	return &Truncator{
		limit:    limit,
		head:     head,
		tail:     tail,
		ellipsis: xps.FromText(ellipsis),
	}, nil
}

// DefaultTruncator returns a truncator with the default geometry.
func DefaultTruncator() *Truncator {
	t, _ := NewTruncator(DefaultLimit, DefaultHead, DefaultTail, DefaultEllipsis)
	return t
}

// Truncate returns the shortened form of line.
func (t *Truncator) Truncate(line xps.String) xps.String {
	n := line.Len()
	if n <= t.limit {
		return line
	}
	return xps.Concat(line.Slice(0, t.head), t.ellipsis, line.Slice(n-t.tail, n))
}

// Apply implements Filter.
func (t *Truncator) Apply(line xps.String) (xps.String, error) {
	return t.Truncate(line), nil
}
