package textpos

import "errors"

// Errors reported by position conversions and store mutations.
// Callers recover from all of these at the widget boundary; none is fatal.
var (
	// ErrInvalidBoundary indicates an offset or position that is out of
	// bounds or does not fall on a grapheme-cluster boundary. The engine
	// never splits a multi-byte cluster and never clamps silently.
	ErrInvalidBoundary = errors.New("offset not on a grapheme boundary or out of bounds")

	// ErrInvalidRange indicates a range whose end precedes its start.
	ErrInvalidRange = errors.New("range end before start")

	// ErrEmptyOperation marks a mutation that had nothing to do, such as
	// deleting an empty range. It is a recognized sentinel rather than a
	// failure: the document is unchanged and no undo record is created.
	ErrEmptyOperation = errors.New("empty operation")

	// ErrInvalidText indicates text that the target store cannot hold,
	// such as a line break inserted into a single-line store.
	ErrInvalidText = errors.New("invalid text for store")
)
