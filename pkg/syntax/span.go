package syntax

import "fmt"

// TextSpan is a half-open byte range [Start, End) into a source text.
type TextSpan struct {
	Start int
	End   int
}

// NewSpan returns the span [start, end). Callers must ensure start <= end.
func NewSpan(start, end int) TextSpan {
	return TextSpan{Start: start, End: end}
}

// SpanFromBounds returns the smallest span covering both spans.
func SpanFromBounds(first, last TextSpan) TextSpan {
	return TextSpan{Start: min(first.Start, last.Start), End: max(first.End, last.End)}
}

// Len returns the number of bytes covered by the span.
func (s TextSpan) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers zero bytes.
func (s TextSpan) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether offset lies inside the span.
func (s TextSpan) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// ContainsSpan reports whether other lies entirely inside the span.
// An empty span at either boundary is contained.
func (s TextSpan) ContainsSpan(other TextSpan) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// OverlapsWith reports whether the spans share at least one byte.
func (s TextSpan) OverlapsWith(other TextSpan) bool {
	return max(s.Start, other.Start) < min(s.End, other.End)
}

// IntersectsWith reports whether the spans overlap or touch.
func (s TextSpan) IntersectsWith(other TextSpan) bool {
	return other.Start <= s.End && other.End >= s.Start
}

// String formats the span as "[start..end)".
func (s TextSpan) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End)
}
