package store

import (
	"fmt"
	"strings"

	"github.com/dshills/textcore/textpos"
)

// StringStore is the flat-buffer backend for short single-line content:
// text inputs, masked fields, search boxes. Operations are O(length),
// which is acceptable because the length is bounded by the size of a UI
// field. It refuses line breaks.
type StringStore struct {
	buf string
}

// NewStringStore creates an empty single-line store.
func NewStringStore() *StringStore {
	return &StringStore{}
}

// NewStringStoreFrom creates a single-line store with initial content.
// The content must not contain line breaks.
func NewStringStoreFrom(s string) (*StringStore, error) {
	st := &StringStore{}
	if err := st.SetString(s); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *StringStore) lenBytes() int { return len(s.buf) }
func (s *StringStore) lenLines() int { return 1 }
func (s *StringStore) lineOf(int) int {
	return 0
}

func (s *StringStore) lineSpan(line int) (int, int, int) {
	return 0, len(s.buf), len(s.buf)
}

func (s *StringStore) text(start, end int) string {
	return s.buf[start:end]
}

// LenBytes returns the byte length of the content.
func (s *StringStore) LenBytes() textpos.ByteOffset {
	return len(s.buf)
}

// LenLines returns 1; a StringStore always holds exactly one line.
func (s *StringStore) LenLines() int {
	return 1
}

// LineBytes returns the byte range of the single line.
func (s *StringStore) LineBytes(line int) (textpos.ByteRange, error) {
	if line != 0 {
		return textpos.ByteRange{}, fmt.Errorf("line %d of 1: %w", line, textpos.ErrInvalidBoundary)
	}
	return textpos.NewByteRange(0, len(s.buf)), nil
}

// Slice returns the text of a byte range.
func (s *StringStore) Slice(r textpos.ByteRange) (string, error) {
	if err := validRange(s, r); err != nil {
		return "", err
	}
	return s.buf[r.Start:r.End], nil
}

// String returns the whole content.
func (s *StringStore) String() string {
	return s.buf
}

// SetString replaces the content. Line breaks are rejected.
func (s *StringStore) SetString(t string) error {
	if strings.ContainsAny(t, "\r\n") {
		return fmt.Errorf("line break in single-line store: %w", textpos.ErrInvalidText)
	}
	s.buf = t
	return nil
}

// Graphemes returns an iterator over the clusters of a byte range.
func (s *StringStore) Graphemes(r textpos.ByteRange) (*Graphemes, error) {
	return newGraphemes(s, r)
}

// Insert places text at a byte offset.
func (s *StringStore) Insert(off textpos.ByteOffset, text string) (EditDelta, error) {
	if len(text) == 0 {
		return EditDelta{}, fmt.Errorf("insert: %w", textpos.ErrEmptyOperation)
	}
	if strings.ContainsAny(text, "\r\n") {
		return EditDelta{}, fmt.Errorf("line break in single-line store: %w", textpos.ErrInvalidText)
	}
	if err := checkBoundary(s, off); err != nil {
		return EditDelta{}, err
	}

	s.buf = s.buf[:off] + text + s.buf[off:]
	return EditDelta{
		Offset:      off,
		InsertedLen: len(text),
	}, nil
}

// Delete removes a byte range and returns the removed text.
func (s *StringStore) Delete(r textpos.ByteRange) (EditDelta, error) {
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

	removed := s.buf[r.Start:r.End]
	s.buf = s.buf[:r.Start] + s.buf[r.End:]
	return EditDelta{
		Offset:      r.Start,
		RemovedLen:  len(removed),
		RemovedText: removed,
	}, nil
}

// ByteToPosition converts a byte offset to a text position.
func (s *StringStore) ByteToPosition(off textpos.ByteOffset) (textpos.TextPosition, error) {
	return byteToPosition(s, off)
}

// PositionToByte converts a text position to a byte offset.
func (s *StringStore) PositionToByte(pos textpos.TextPosition) (textpos.ByteOffset, error) {
	return positionToByte(s, pos)
}
