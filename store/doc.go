// Package store provides the text storage abstraction behind a document:
// a single contract with two backends. StringStore keeps a flat buffer
// and suits short single-line inputs where O(length) operations are
// bounded by field size. RopeStore keeps a balanced chunk tree and
// sustains interactive edits on documents with millions of lines.
//
// A backend is chosen once at document creation from an expected-size
// hint and never switched mid-lifetime.
//
// All mutations speak bytes at the wire level but refuse offsets that
// would split a grapheme cluster, and every successful mutation returns
// an EditDelta value describing the change. The delta is pushed outward
// to the style index and the metrics cache; neither of those holds a
// reference back into the store.
package store
