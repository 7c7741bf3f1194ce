package grapheme

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/textcore/textpos"
)

// Iter walks the grapheme clusters of a text slice. It is finite and
// restartable: Reset rewinds to the first cluster, SkipTo jumps forward
// or backward to any cluster boundary without re-reading what comes
// before it.
//
// The iterator addresses clusters by their byte range in the complete
// document; base is the document offset of the slice's first byte.
type Iter struct {
	src   string
	base  textpos.ByteOffset
	rest  string
	pos   int // byte position of the next cluster within src
	state int
}

// NewIter creates an iterator over s. base is the offset of s within
// the complete document, used to report absolute byte ranges.
func NewIter(s string, base textpos.ByteOffset) *Iter {
	return &Iter{src: s, base: base, rest: s, state: -1}
}

// Next returns the next grapheme cluster, or ok == false at the end.
func (it *Iter) Next() (Grapheme, bool) {
	if len(it.rest) == 0 {
		return Grapheme{}, false
	}
	var cluster string
	var width int
	cluster, it.rest, width, it.state = uniseg.FirstGraphemeClusterInString(it.rest, it.state)
	g := Grapheme{
		Text:  cluster,
		Bytes: textpos.NewByteRange(it.base+it.pos, it.base+it.pos+len(cluster)),
		Width: width,
	}
	it.pos += len(cluster)
	return g, true
}

// Peek returns the next cluster without consuming it.
func (it *Iter) Peek() (Grapheme, bool) {
	save := *it
	g, ok := it.Next()
	*it = save
	return g, ok
}

// Reset rewinds the iterator to the start of the slice.
func (it *Iter) Reset() {
	it.rest = it.src
	it.pos = 0
	it.state = -1
}

// Offset returns the absolute byte offset of the next cluster.
func (it *Iter) Offset() textpos.ByteOffset {
	return it.base + it.pos
}

// SkipTo positions the iterator at the given absolute byte offset.
// The offset must lie within the slice and on a cluster boundary;
// otherwise textpos.ErrInvalidBoundary is returned and the iterator is
// unchanged.
func (it *Iter) SkipTo(off textpos.ByteOffset) error {
	rel := off - it.base
	if rel < 0 || rel > len(it.src) {
		return fmt.Errorf("skip to %d outside slice [%d:%d): %w",
			off, it.base, it.base+len(it.src), textpos.ErrInvalidBoundary)
	}
	if !IsBoundary(it.src, rel) {
		return fmt.Errorf("skip to %d: %w", off, textpos.ErrInvalidBoundary)
	}
	it.rest = it.src[rel:]
	it.pos = rel
	// Segmentation state restarts cleanly at a known boundary.
	it.state = -1
	return nil
}

// SkipLine advances past the next hard line break. After the call the
// iterator stands on the first cluster of the following line, or at the
// end of the slice if no break remains.
func (it *Iter) SkipLine() {
	for {
		g, ok := it.Next()
		if !ok || g.IsLineBreak() {
			return
		}
	}
}
