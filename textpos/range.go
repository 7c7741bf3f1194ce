package textpos

import "fmt"

// ByteRange is a half-open byte range [Start, End).
type ByteRange struct {
	Start ByteOffset
	End   ByteOffset
}

// NewByteRange creates a ByteRange from start and end offsets.
func NewByteRange(start, end ByteOffset) ByteRange {
	return ByteRange{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r ByteRange) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r ByteRange) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r ByteRange) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start <= End and Start is not negative.
func (r ByteRange) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r ByteRange) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if other lies entirely within this range.
func (r ByteRange) ContainsRange(other ByteRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps returns true if the two ranges share at least one byte.
func (r ByteRange) Overlaps(other ByteRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Touches returns true if the ranges overlap or abut.
func (r ByteRange) Touches(other ByteRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// Intersect returns the overlapping part of two ranges, or an empty
// range positioned at the later start if they do not overlap.
func (r ByteRange) Intersect(other ByteRange) ByteRange {
	start := r.Start
	if other.Start > start {
		start = other.Start
	}
	end := r.End
	if other.End < end {
		end = other.End
	}
	if start >= end {
		return ByteRange{Start: start, End: start}
	}
	return ByteRange{Start: start, End: end}
}

// Union returns the smallest range containing both ranges.
func (r ByteRange) Union(other ByteRange) ByteRange {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.End
	if other.End > end {
		end = other.End
	}
	return ByteRange{Start: start, End: end}
}

// Shift returns the range moved by delta bytes.
func (r ByteRange) Shift(delta int) ByteRange {
	return ByteRange{Start: r.Start + delta, End: r.End + delta}
}

// ExpandBy adjusts a single offset for an insertion covering insert.
// Offsets at or after the insertion point move right by the inserted length.
func ExpandBy(insert ByteRange, pos ByteOffset) ByteOffset {
	if pos < insert.Start {
		return pos
	}
	return pos + insert.Len()
}

// ShrinkBy adjusts a single offset for a removal covering remove.
// Offsets inside the removed range collapse to its start; offsets after
// it move left by the removed length.
func ShrinkBy(remove ByteRange, pos ByteOffset) ByteOffset {
	switch {
	case pos < remove.Start:
		return pos
	case pos < remove.End:
		return remove.Start
	default:
		return pos - remove.Len()
	}
}

// TextRange is an ordered pair of text positions with Start <= End.
// It is used for selections and for style application.
type TextRange struct {
	Start TextPosition
	End   TextPosition
}

// NewTextRange creates an ordered TextRange, swapping the endpoints
// if they arrive out of order.
func NewTextRange(a, b TextPosition) TextRange {
	if b.Before(a) {
		a, b = b, a
	}
	return TextRange{Start: a, End: b}
}

// MaxRange is the sentinel range meaning "to end of document".
var MaxRange = TextRange{Start: TextPosition{}, End: MaxPosition}

// String returns a human-readable representation of the range.
func (r TextRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if start <= end.
func (r TextRange) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsMax returns true if this is the to-end-of-document sentinel.
func (r TextRange) IsMax() bool {
	return r == MaxRange
}

// Contains returns true if the given position is within the range.
func (r TextRange) Contains(p TextPosition) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// IsSingleLine returns true if the range spans only one line.
func (r TextRange) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}
