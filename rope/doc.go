// Package rope implements an immutable rope: a balanced tree of text
// chunks with aggregated metrics on every node. Insert, delete and
// line/offset lookups are O(log n), which keeps edits on documents with
// millions of lines at interactive latency where a flat buffer would
// degrade to O(n) per keystroke.
//
// Operations return new Rope values and never modify the receiver, so a
// rope captured before an edit remains a consistent snapshot of the old
// text.
//
// Offsets and line indexes here are raw bytes and newline counts; the
// grapheme- and column-aware view lives one layer up in the store
// package.
package rope
