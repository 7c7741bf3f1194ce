package store

import (
	"fmt"

	"github.com/dshills/textcore/grapheme"
	"github.com/dshills/textcore/textpos"
)

// lineSource is the minimal view of a backend the shared position codec
// needs: line spans and text slices. Both backends implement it.
type lineSource interface {
	lenBytes() int
	lenLines() int

	// lineSpan returns the byte offsets of a line: start, content end
	// (excluding the line break and a CR belonging to CRLF), and the
	// start of the following line (one past the break, or the document
	// end for the last line).
	lineSpan(line int) (start, contentEnd, next int)

	// lineOf returns the line index containing the byte offset.
	lineOf(off int) int

	// text returns the bytes of [start, end).
	text(start, end int) string
}

// byteToPosition is the shared byte-offset to (line, column) conversion.
// The one-past-end offset maps to the position just after the last
// cluster; that case carried a historic off-by-one in more than one
// editor, so it is handled first and explicitly.
func byteToPosition(src lineSource, off textpos.ByteOffset) (textpos.TextPosition, error) {
	if off < 0 || off > src.lenBytes() {
		return textpos.TextPosition{}, fmt.Errorf("byte %d of %d: %w",
			off, src.lenBytes(), textpos.ErrInvalidBoundary)
	}

	line := src.lineOf(off)
	start, contentEnd, next := src.lineSpan(line)

	if off == next && line+1 < src.lenLines() {
		// Exactly at the start of the following line.
		return textpos.Pos(uint32(line+1), 0), nil
	}
	if off > contentEnd && off < next {
		// Inside the line break ("\r|\n").
		return textpos.TextPosition{}, fmt.Errorf("byte %d splits a line break: %w",
			off, textpos.ErrInvalidBoundary)
	}

	lineText := src.text(start, contentEnd)
	rel := off - start
	if rel > len(lineText) {
		rel = len(lineText)
	}
	if !grapheme.IsBoundary(lineText, rel) {
		return textpos.TextPosition{}, fmt.Errorf("byte %d splits a cluster: %w",
			off, textpos.ErrInvalidBoundary)
	}
	return textpos.Pos(uint32(line), uint32(grapheme.Count(lineText[:rel]))), nil
}

// positionToByte is the shared (line, column) to byte-offset conversion.
// A column equal to the line's cluster count maps to the content end.
func positionToByte(src lineSource, pos textpos.TextPosition) (textpos.ByteOffset, error) {
	if int(pos.Line) >= src.lenLines() {
		return 0, fmt.Errorf("line %d of %d: %w",
			pos.Line, src.lenLines(), textpos.ErrInvalidBoundary)
	}

	start, contentEnd, _ := src.lineSpan(int(pos.Line))
	if pos.Col == 0 {
		return start, nil
	}

	lineText := src.text(start, contentEnd)
	it := grapheme.NewIter(lineText, start)
	col := uint32(0)
	for {
		g, ok := it.Next()
		if !ok {
			break
		}
		col++
		if col == pos.Col {
			return g.Bytes.End, nil
		}
	}
	return 0, fmt.Errorf("column %d of %d on line %d: %w",
		pos.Col, col, pos.Line, textpos.ErrInvalidBoundary)
}

// checkBoundary verifies that an offset is a valid edit point: inside
// the document and on a grapheme-cluster boundary.
func checkBoundary(src lineSource, off textpos.ByteOffset) error {
	_, err := byteToPosition(src, off)
	return err
}

// validRange orders and bounds-checks a byte range against the source.
func validRange(src lineSource, r textpos.ByteRange) error {
	if !r.IsValid() {
		return fmt.Errorf("%s: %w", r, textpos.ErrInvalidRange)
	}
	if r.End > src.lenBytes() {
		return fmt.Errorf("%s beyond %d bytes: %w", r, src.lenBytes(), textpos.ErrInvalidBoundary)
	}
	return nil
}
