package store

import (
	"strings"

	"github.com/dshills/textcore/textpos"
)

// Store is the storage contract for a document. Offsets are raw bytes;
// positions are (line, grapheme-column) pairs. Implementations must
// reject offsets that do not fall on grapheme-cluster boundaries rather
// than clamping them.
type Store interface {
	// LenBytes returns the total byte length of the document.
	LenBytes() textpos.ByteOffset

	// LenLines returns the number of lines: newlines + 1.
	LenLines() int

	// LineBytes returns the byte range of a line's content, excluding
	// its line break.
	LineBytes(line int) (textpos.ByteRange, error)

	// Slice returns the text of a byte range.
	Slice(r textpos.ByteRange) (string, error)

	// String returns the whole document.
	String() string

	// SetString replaces the whole document, resetting any prior content.
	SetString(s string) error

	// Graphemes returns a restartable iterator over the grapheme
	// clusters of a byte range. Both range bounds must lie on cluster
	// boundaries.
	Graphemes(r textpos.ByteRange) (*Graphemes, error)

	// Insert places text at a byte offset and reports the change.
	Insert(off textpos.ByteOffset, text string) (EditDelta, error)

	// Delete removes a byte range and reports the change, including the
	// removed text. Deleting an empty range returns
	// textpos.ErrEmptyOperation and leaves the document untouched.
	Delete(r textpos.ByteRange) (EditDelta, error)

	// ByteToPosition converts a byte offset to a text position. The
	// one-past-end offset is valid and maps just after the last cluster.
	ByteToPosition(off textpos.ByteOffset) (textpos.TextPosition, error)

	// PositionToByte converts a text position to a byte offset. A column
	// equal to the line's cluster count maps to the line end.
	PositionToByte(pos textpos.TextPosition) (textpos.ByteOffset, error)
}

// EditDelta describes one applied mutation in terms every dependent
// structure needs: where it happened, how many bytes came and went, and
// how the line structure moved. It flows one way, from the store to the
// style index and the metrics cache.
type EditDelta struct {
	// Offset is the byte position of the edit in the pre-edit document.
	Offset textpos.ByteOffset

	// RemovedLen and InsertedLen are the byte lengths removed/inserted.
	RemovedLen  int
	InsertedLen int

	// RemovedText is the text that was removed, for undo.
	RemovedText string

	// Line is the line index containing Offset.
	Line int

	// RemovedBreaks and InsertedBreaks count line breaks removed and
	// inserted, for minimal cache invalidation.
	RemovedBreaks  int
	InsertedBreaks int
}

// ByteDelta returns the signed change in document length.
func (d EditDelta) ByteDelta() int {
	return d.InsertedLen - d.RemovedLen
}

// RemovedRange returns the removed range in pre-edit coordinates.
func (d EditDelta) RemovedRange() textpos.ByteRange {
	return textpos.NewByteRange(d.Offset, d.Offset+d.RemovedLen)
}

// InsertedRange returns the inserted range in post-edit coordinates.
func (d EditDelta) InsertedRange() textpos.ByteRange {
	return textpos.NewByteRange(d.Offset, d.Offset+d.InsertedLen)
}

// ChangedLines reports whether the edit changed the document's line
// structure (any break inserted or removed).
func (d EditDelta) ChangedLines() bool {
	return d.RemovedBreaks != 0 || d.InsertedBreaks != 0
}

func countBreaks(s string) int {
	return strings.Count(s, "\n")
}
