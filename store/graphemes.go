package store

import (
	"fmt"

	"github.com/dshills/textcore/grapheme"
	"github.com/dshills/textcore/textpos"
)

// Graphemes iterates the grapheme clusters of a byte range, one line
// segment at a time so that arbitrarily large ranges never materialize
// at once. It is finite and restartable, and it can skip to any cluster
// boundary without decoding what comes before it.
type Graphemes struct {
	src   lineSource
	rng   textpos.ByteRange
	line  int
	inner *grapheme.Iter
	done  bool
}

func newGraphemes(src lineSource, r textpos.ByteRange) (*Graphemes, error) {
	if err := validRange(src, r); err != nil {
		return nil, err
	}
	if err := checkBoundary(src, r.Start); err != nil {
		return nil, err
	}
	if err := checkBoundary(src, r.End); err != nil {
		return nil, err
	}
	g := &Graphemes{src: src, rng: r}
	g.seek(r.Start)
	return g, nil
}

// seek positions the iterator at an absolute offset known to be valid.
func (g *Graphemes) seek(off textpos.ByteOffset) {
	if off >= g.rng.End {
		g.done = true
		g.inner = nil
		return
	}
	g.done = false
	g.line = g.src.lineOf(off)
	g.loadLine()
	// Safe: off is on a cluster boundary inside the loaded segment.
	_ = g.inner.SkipTo(off)
}

// loadLine builds the inner iterator for the current line's segment,
// including the line break so CRLF stays one cluster.
func (g *Graphemes) loadLine() {
	start, _, next := g.src.lineSpan(g.line)
	segStart := max(start, g.rng.Start)
	segEnd := min(next, g.rng.End)
	g.inner = grapheme.NewIter(g.src.text(segStart, segEnd), segStart)
}

// Next returns the next cluster, or ok == false at the end of the range.
func (g *Graphemes) Next() (grapheme.Grapheme, bool) {
	for !g.done {
		if gr, ok := g.inner.Next(); ok {
			return gr, true
		}
		g.line++
		if g.line >= g.src.lenLines() {
			g.done = true
			break
		}
		start, _, _ := g.src.lineSpan(g.line)
		if start >= g.rng.End {
			g.done = true
			break
		}
		g.loadLine()
	}
	return grapheme.Grapheme{}, false
}

// Reset rewinds to the start of the range.
func (g *Graphemes) Reset() {
	g.seek(g.rng.Start)
}

// Offset returns the absolute byte offset of the next cluster, or the
// range end once exhausted.
func (g *Graphemes) Offset() textpos.ByteOffset {
	if g.done || g.inner == nil {
		return g.rng.End
	}
	return g.inner.Offset()
}

// SkipTo positions the iterator at an absolute byte offset within the
// range. The offset must lie on a cluster boundary.
func (g *Graphemes) SkipTo(off textpos.ByteOffset) error {
	if off < g.rng.Start || off > g.rng.End {
		return fmt.Errorf("skip to %d outside %s: %w", off, g.rng, textpos.ErrInvalidBoundary)
	}
	if err := checkBoundary(g.src, off); err != nil {
		return err
	}
	g.seek(off)
	return nil
}

// SkipLine advances to the first cluster of the next line, skipping the
// remainder of the current one without shaping it.
func (g *Graphemes) SkipLine() {
	if g.done {
		return
	}
	g.line++
	if g.line >= g.src.lenLines() {
		g.done = true
		g.inner = nil
		return
	}
	start, _, _ := g.src.lineSpan(g.line)
	if start >= g.rng.End {
		g.done = true
		g.inner = nil
		return
	}
	g.loadLine()
}
