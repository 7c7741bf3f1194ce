// Package textpos provides the position and range types shared by the
// text engine: byte offsets into the raw document, grapheme-indexed
// line/column positions, and the ordered ranges built from both.
//
// Two coordinate systems coexist:
//
//   - ByteOffset / ByteRange index the raw UTF-8 bytes. They are the only
//     representation stable enough to binary-search, so styling and undo
//     are keyed by them.
//   - TextPosition / TextRange are (line, column) pairs where the column
//     counts grapheme clusters, not bytes or runes. They are what cursor
//     and selection logic works in, and they go stale on every edit.
//
// Conversions between the two live on the text store, which owns the
// document content; this package only defines the value types and the
// error kinds those conversions report.
package textpos
