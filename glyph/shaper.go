package glyph

import (
	"fmt"

	"github.com/dshills/textcore/grapheme"
	"github.com/dshills/textcore/textpos"
)

// DefaultTabWidth is the tab stop used when no option is given.
const DefaultTabWidth = 8

// Source supplies the grapheme clusters of one logical line, including
// its trailing line break. *store.Graphemes satisfies it.
type Source interface {
	Next() (grapheme.Grapheme, bool)
	SkipTo(off textpos.ByteOffset) error
	SkipLine()
	Reset()
}

// Option configures a Shaper.
type Option func(*Shaper)

// WithTabWidth sets the tab stop distance. Widths below 1 are treated
// as 1.
func WithTabWidth(n int) Option {
	return func(s *Shaper) {
		if n < 1 {
			n = 1
		}
		s.tabWidth = n
	}
}

// WithShowControl renders control characters and line breaks as their
// Unicode picture glyphs instead of replacement characters.
func WithShowControl(show bool) Option {
	return func(s *Shaper) {
		s.showCtrl = show
	}
}

// WithWrapControl makes hidden break opportunities (soft hyphen,
// zero-width space) visible even when no wrap lands on them.
func WithWrapControl(show bool) Option {
	return func(s *Shaper) {
		s.wrapCtrl = show
	}
}

// Shaper holds the display configuration shared by every line of a
// widget: tab stops and control visibility. It is cheap and immutable
// once built; wrap mode and viewport width vary per call instead
// because they change on every resize.
type Shaper struct {
	tabWidth int
	showCtrl bool
	wrapCtrl bool
}

// NewShaper creates a shaper with the given options.
func NewShaper(opts ...Option) *Shaper {
	s := &Shaper{tabWidth: DefaultTabWidth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Line returns a glyph iterator over one logical line. The source must
// cover exactly that line, including its trailing break if any. A
// viewport width below 1 disables wrapping.
func (s *Shaper) Line(src Source, line int, mode WrapMode, width int) *Iter {
	if width < 1 {
		mode = WrapNone
	}
	return &Iter{sh: s, src: src, line: line, mode: mode, width: width}
}

// Iter produces the glyphs of one logical line, lazily, one screen row
// at a time. It is restartable via Reset and supports skipping.
type Iter struct {
	sh    *Shaper
	src   Source
	line  int
	mode  WrapMode
	width int

	row     int
	logical uint32

	pending []Glyph
	idx     int
	carry   []Glyph
	done    bool
}

// Next returns the next glyph, or ok == false after the line's last
// glyph.
func (it *Iter) Next() (Glyph, bool) {
	if it.idx >= len(it.pending) {
		if it.done {
			return Glyph{}, false
		}
		it.fillRow()
		if len(it.pending) == 0 {
			return Glyph{}, false
		}
	}
	gl := it.pending[it.idx]
	it.idx++
	return gl, true
}

// Reset restarts the iterator at the beginning of the line.
func (it *Iter) Reset() {
	it.src.Reset()
	it.row = 0
	it.logical = 0
	it.pending = it.pending[:0]
	it.idx = 0
	it.carry = it.carry[:0]
	it.done = false
}

// SkipTo repositions the iterator at a byte offset inside the line
// without shaping what comes before it. The offset must lie on a
// cluster boundary. Screen columns and the logical column restart at
// zero from the skip point; with wrapping active, callers who need
// true wrap rows should iterate from the line start instead.
func (it *Iter) SkipTo(off textpos.ByteOffset) error {
	if err := it.src.SkipTo(off); err != nil {
		return fmt.Errorf("glyph skip: %w", err)
	}
	it.pending = it.pending[:0]
	it.idx = 0
	it.carry = it.carry[:0]
	it.logical = 0
	it.done = false
	return nil
}

// SkipRest abandons the remainder of the line without shaping it.
func (it *Iter) SkipRest() {
	it.src.SkipLine()
	it.pending = it.pending[:0]
	it.idx = 0
	it.carry = it.carry[:0]
	it.done = true
}

// fillRow shapes one screen row into pending. Word wrapping needs to
// see the overflowing glyph before it can place the break, so the row
// is buffered; everything already emitted stays untouched.
func (it *Iter) fillRow() {
	it.pending = it.pending[:0]
	it.idx = 0

	col := 0
	breakAt := -1

	// Glyphs displaced past the previous row's wrap point. Tabs are
	// re-expanded at their new column.
	if len(it.carry) > 0 {
		for _, gl := range it.carry {
			gl.Row = it.row
			gl.Col = col
			if gl.tab {
				gl.Width = it.sh.tabWidth - col%it.sh.tabWidth
			}
			it.pending = append(it.pending, gl)
			col += gl.Width
			if gl.breakOpportunity() {
				breakAt = len(it.pending) - 1
			}
		}
		it.carry = it.carry[:0]
	}

	for {
		g, ok := it.src.Next()
		if !ok {
			it.done = true
			return
		}
		gl := it.sh.shape(g, col)
		gl.Pos = textpos.Pos(uint32(it.line), it.logical)
		gl.Row = it.row
		gl.Col = col
		it.logical++

		if gl.LineBreak {
			it.pending = append(it.pending, gl)
			it.done = true
			return
		}

		if it.mode != WrapNone && col+gl.Width > it.width && len(it.pending) > 0 {
			it.wrapRow(gl, breakAt)
			return
		}

		it.pending = append(it.pending, gl)
		col += gl.Width
		if gl.breakOpportunity() {
			breakAt = len(it.pending) - 1
		}
	}
}

// wrapRow ends the current row before the overflowing glyph. In word
// mode the row is cut after the last break opportunity and the tail
// carries over; without one, or in hard mode, the overflowing glyph
// alone starts the next row.
func (it *Iter) wrapRow(overflow Glyph, breakAt int) {
	cut := len(it.pending)
	if it.mode == WrapWord && breakAt >= 0 {
		cut = breakAt + 1
	}
	it.carry = append(it.carry, it.pending[cut:]...)
	it.carry = append(it.carry, overflow)
	it.pending = it.pending[:cut]

	last := &it.pending[len(it.pending)-1]
	last.materialize()
	last.LineBreak = true
	last.SoftBreak = true
	it.row++
}
