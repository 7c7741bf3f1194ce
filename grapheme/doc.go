// Package grapheme segments text into grapheme clusters, the smallest
// units a user perceives as one character. A cluster may span several
// Unicode scalar values (combining marks, emoji sequences, CRLF), so all
// column arithmetic in the engine is done in clusters, never in runes
// or bytes.
//
// Segmentation follows UAX #29 via github.com/rivo/uniseg. Display widths
// come from the same segmentation pass, with github.com/mattn/go-runewidth
// backing single-rune measurements where the engine synthesizes display
// text of its own.
package grapheme
