package grapheme

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/textcore/textpos"
)

// Characters with special meaning for line breaking and display.
const (
	// SoftHyphen is invisible but marks a break opportunity; when a line
	// is broken at it, a visible hyphen is displayed.
	SoftHyphen = "­"

	// ZeroWidthSpace is invisible and marks a break opportunity.
	ZeroWidthSpace = "​"
)

// Grapheme is one grapheme cluster of the document plus its location.
type Grapheme struct {
	// Text is the cluster's UTF-8 bytes.
	Text string

	// Bytes is the cluster's byte range in the full document.
	Bytes textpos.ByteRange

	// Width is the cluster's monospace display width in screen cells.
	// Line breaks and invisible break marks have width 0; tabs report
	// width 1 here because their true width depends on the column.
	Width int
}

// IsLineBreak returns true for a hard line break cluster.
// CRLF segments as a single cluster, so "\r\n" is one line break.
// A lone carriage return is not a break; it displays as a control
// character.
func (g Grapheme) IsLineBreak() bool {
	return g.Text == "\n" || g.Text == "\r\n"
}

// IsWhitespaceBreak returns true for whitespace that allows a word break
// after it.
func (g Grapheme) IsWhitespaceBreak() bool {
	return g.Text == " " || g.Text == "\t"
}

// IsHiddenBreak returns true for invisible characters that allow a word
// break after them (soft hyphen, zero-width space).
func (g Grapheme) IsHiddenBreak() bool {
	return g.Text == SoftHyphen || g.Text == ZeroWidthSpace
}

// IsBreakOpportunity returns true if word wrapping may break after this
// cluster.
func (g Grapheme) IsBreakOpportunity() bool {
	return g.IsWhitespaceBreak() || g.IsHiddenBreak()
}

// IsControl returns true for C0 control characters other than the line
// feed and tab, including a lone carriage return.
func (g Grapheme) IsControl() bool {
	if len(g.Text) != 1 {
		return false
	}
	b := g.Text[0]
	return b < 0x20 && b != '\n' && b != '\t'
}

// IsTab returns true for a horizontal tab.
func (g Grapheme) IsTab() bool {
	return g.Text == "\t"
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Width returns the monospace display width of s in screen cells.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// IsBoundary reports whether byte offset off falls on a cluster boundary
// of s. Offsets 0 and len(s) are always boundaries.
func IsBoundary(s string, off int) bool {
	if off == 0 || off == len(s) {
		return true
	}
	if off < 0 || off > len(s) {
		return false
	}
	// A cluster boundary is always a rune boundary; check that first so
	// the scan below never has to decode a partial rune.
	if !utf8.RuneStart(s[off]) {
		return false
	}
	state := -1
	pos := 0
	rest := s
	for len(rest) > 0 && pos < off {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	return pos == off
}

// NextBoundary returns the first cluster boundary strictly after off,
// or len(s) if off is at or past the last cluster.
func NextBoundary(s string, off int) int {
	if off >= len(s) {
		return len(s)
	}
	if off < 0 {
		off = 0
	}
	state := -1
	pos := 0
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
		if pos > off {
			return pos
		}
	}
	return len(s)
}

// PrevBoundary returns the last cluster boundary strictly before off,
// or 0 if off is at or before the first cluster.
func PrevBoundary(s string, off int) int {
	if off <= 0 {
		return 0
	}
	if off > len(s) {
		off = len(s)
	}
	state := -1
	prev := 0
	pos := 0
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := pos + len(cluster)
		if next >= off {
			return pos
		}
		prev = pos
		pos = next
	}
	return prev
}
