package textpos

import (
	"fmt"
	"math"
)

// ByteOffset represents an absolute byte position in the document.
type ByteOffset = int

// TextPosition is a line/column position.
// Line is 0-indexed. Col is a 0-indexed grapheme-cluster count within the
// line, never a byte offset. A position is only meaningful relative to the
// document state it was resolved against; any edit invalidates it.
type TextPosition struct {
	Line uint32
	Col  uint32
}

// Pos creates a TextPosition from line and column.
func Pos(line, col uint32) TextPosition {
	return TextPosition{Line: line, Col: col}
}

// MaxPosition is the sentinel position beyond any real document position.
var MaxPosition = TextPosition{Line: math.MaxUint32, Col: math.MaxUint32}

// String returns a human-readable representation of the position.
func (p TextPosition) String() string {
	if p == MaxPosition {
		return "(max)"
	}
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other,
// ordering by line first and column second.
func (p TextPosition) Compare(other TextPosition) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p TextPosition) Before(other TextPosition) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p TextPosition) After(other TextPosition) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero position (0:0).
func (p TextPosition) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

// Min returns the earlier of two positions.
func (p TextPosition) Min(other TextPosition) TextPosition {
	if p.Before(other) {
		return p
	}
	return other
}

// Max returns the later of two positions.
func (p TextPosition) Max(other TextPosition) TextPosition {
	if p.After(other) {
		return p
	}
	return other
}

// Selection is a cursor/anchor pair in text coordinates.
// Anchor is where the selection started; Cursor is the moving end.
// Anchor may come after Cursor when selecting backwards.
type Selection struct {
	Anchor TextPosition
	Cursor TextPosition
}

// Range returns the selection as an ordered TextRange.
func (s Selection) Range() TextRange {
	return NewTextRange(s.Anchor, s.Cursor)
}

// IsEmpty returns true if anchor and cursor coincide.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Cursor
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("sel[%s->%s]", s.Anchor, s.Cursor)
}
