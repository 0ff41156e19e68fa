package textdoc

import "fmt"

// Range represents a span between two positions in a document.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange creates a new Range from start and end positions.
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if start <= end.
func (r Range) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// Contains returns true if the given position is within the range.
func (r Range) Contains(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// IsSingleLine returns true if the range spans only one line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// LineSpan returns the number of lines the range covers beyond its first
// (0 for a single-line range).
func (r Range) LineSpan() int {
	return r.End.Line - r.Start.Line
}

// TranslateLines returns a copy of the range with both endpoints' line
// numbers shifted by delta. Columns are unchanged.
func (r Range) TranslateLines(delta int) Range {
	return Range{
		Start: r.Start.Translate(delta, 0),
		End:   r.End.Translate(delta, 0),
	}
}
