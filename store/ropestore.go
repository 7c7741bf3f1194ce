package store

import (
	"fmt"

	"github.com/dshills/textcore/rope"
	"github.com/dshills/textcore/textpos"
)

// RopeStore is the rope-backed backend for multi-line documents. Edits
// and line lookups are O(log n), which holds up on documents with
// millions of lines and very long individual lines.
type RopeStore struct {
	rope rope.Rope
}

// NewRopeStore creates an empty multi-line store.
func NewRopeStore() *RopeStore {
	return &RopeStore{rope: rope.New()}
}

// NewRopeStoreFrom creates a multi-line store with initial content.
func NewRopeStoreFrom(s string) *RopeStore {
	return &RopeStore{rope: rope.FromString(s)}
}

func (s *RopeStore) lenBytes() int { return s.rope.Len() }
func (s *RopeStore) lenLines() int { return s.rope.LineCount() }

func (s *RopeStore) lineOf(off int) int {
	return s.rope.LineOfOffset(off)
}

func (s *RopeStore) lineSpan(line int) (int, int, int) {
	start := s.rope.LineStartOffset(line)
	contentEnd := s.rope.LineEndOffset(line)
	next := s.rope.Len()
	if line+1 < s.rope.LineCount() {
		next = s.rope.LineStartOffset(line + 1)
	}
	// A CR directly before the LF belongs to the break, not the line.
	if contentEnd < next && contentEnd > start {
		if b, ok := s.rope.ByteAt(contentEnd - 1); ok && b == '\r' {
			contentEnd--
		}
	}
	return start, contentEnd, next
}

func (s *RopeStore) text(start, end int) string {
	return s.rope.Slice(start, end)
}

// LenBytes returns the total byte length of the document.
func (s *RopeStore) LenBytes() textpos.ByteOffset {
	return s.rope.Len()
}

// LenLines returns the number of lines.
func (s *RopeStore) LenLines() int {
	return s.rope.LineCount()
}

// LineBytes returns the byte range of a line's content, excluding the
// line break.
func (s *RopeStore) LineBytes(line int) (textpos.ByteRange, error) {
	if line < 0 || line >= s.rope.LineCount() {
		return textpos.ByteRange{}, fmt.Errorf("line %d of %d: %w",
			line, s.rope.LineCount(), textpos.ErrInvalidBoundary)
	}
	start, contentEnd, _ := s.lineSpan(line)
	return textpos.NewByteRange(start, contentEnd), nil
}

// Slice returns the text of a byte range.
func (s *RopeStore) Slice(r textpos.ByteRange) (string, error) {
	if err := validRange(s, r); err != nil {
		return "", err
	}
	return s.rope.Slice(r.Start, r.End), nil
}

// String returns the whole document. Use sparingly on large documents.
func (s *RopeStore) String() string {
	return s.rope.String()
}

// SetString replaces the whole document.
func (s *RopeStore) SetString(t string) error {
	s.rope = rope.FromString(t)
	return nil
}

// Graphemes returns an iterator over the clusters of a byte range.
func (s *RopeStore) Graphemes(r textpos.ByteRange) (*Graphemes, error) {
	return newGraphemes(s, r)
}

// Insert places text at a byte offset.
func (s *RopeStore) Insert(off textpos.ByteOffset, text string) (EditDelta, error) {
	if len(text) == 0 {
		return EditDelta{}, fmt.Errorf("insert: %w", textpos.ErrEmptyOperation)
	}
	if err := checkBoundary(s, off); err != nil {
		return EditDelta{}, err
	}

	line := s.rope.LineOfOffset(off)
	s.rope = s.rope.Insert(off, text)
	return EditDelta{
		Offset:         off,
		InsertedLen:    len(text),
		Line:           line,
		InsertedBreaks: countBreaks(text),
	}, nil
}

// Delete removes a byte range and returns the removed text.
func (s *RopeStore) Delete(r textpos.ByteRange) (EditDelta, error) {
	if err := validRange(s, r); err != nil {
		return EditDelta{}, err
	}
	if r.IsEmpty() {
		return EditDelta{}, fmt.Errorf("delete %s: %w", r, textpos.ErrEmptyOperation)
	}
	if err := checkBoundary(s, r.Start); err != nil {
		return EditDelta{}, err
	}
	if err := checkBoundary(s, r.End); err != nil {
		return EditDelta{}, err
	}

	removed := s.rope.Slice(r.Start, r.End)
	line := s.rope.LineOfOffset(r.Start)
	s.rope = s.rope.Delete(r.Start, r.End)
	return EditDelta{
		Offset:        r.Start,
		RemovedLen:    len(removed),
		RemovedText:   removed,
		Line:          line,
		RemovedBreaks: countBreaks(removed),
	}, nil
}

// ByteToPosition converts a byte offset to a text position.
func (s *RopeStore) ByteToPosition(off textpos.ByteOffset) (textpos.TextPosition, error) {
	return byteToPosition(s, off)
}

// PositionToByte converts a text position to a byte offset.
func (s *RopeStore) PositionToByte(pos textpos.TextPosition) (textpos.ByteOffset, error) {
	return positionToByte(s, pos)
}
