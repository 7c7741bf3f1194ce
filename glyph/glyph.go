package glyph

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/textcore/grapheme"
	"github.com/dshills/textcore/textpos"
)

// WrapMode selects how a logical line maps to screen rows.
type WrapMode int

const (
	// WrapNone never wraps; horizontal scrolling handles overflow.
	WrapNone WrapMode = iota
	// WrapHard breaks at the viewport width regardless of words.
	WrapHard
	// WrapWord breaks at the last break opportunity at or before the
	// viewport width, falling back to a hard break when a word is wider
	// than the viewport.
	WrapWord
)

func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapHard:
		return "hard"
	case WrapWord:
		return "word"
	}
	return "unknown"
}

// Glyph is one displayable unit: the text to paint, its screen extent,
// and the source bytes it stands for. Zero-width glyphs (hidden breaks)
// still carry their source bytes so concatenating a row's byte ranges
// always reproduces the source text.
type Glyph struct {
	// Text is the string to paint. It may differ from the source text:
	// tabs become spaces, control characters become picture glyphs, and
	// a soft hyphen chosen as a wrap point becomes "-".
	Text string

	// Width is the number of screen columns the glyph occupies.
	Width int

	// Bytes is the source byte range, absolute in the document.
	Bytes textpos.ByteRange

	// Pos is the logical position: line and grapheme column.
	Pos textpos.TextPosition

	// Row and Col are the screen position relative to the start of the
	// logical line: Row counts wrap rows, Col counts screen columns.
	Row int
	Col int

	// LineBreak marks the last glyph of a screen row.
	LineBreak bool

	// SoftBreak marks a row end introduced by wrapping rather than a
	// line break in the text.
	SoftBreak bool

	// hiddenBreak marks an invisible break opportunity (soft hyphen or
	// zero-width space); hiddenText is what it becomes when a wrap
	// lands on it.
	hiddenBreak bool
	hiddenText  string

	// tab marks a tab cluster, whose width depends on its column and
	// must be recomputed when wrapping moves it.
	tab bool

	// wordBreak marks a source cluster a word wrap may cut after,
	// independent of the substituted display text.
	wordBreak bool
}

// shape maps one grapheme cluster at a screen column to a glyph,
// applying tab expansion and control substitution per the shaper's
// options. Positions are filled in by the iterator.
func (s *Shaper) shape(g grapheme.Grapheme, col int) Glyph {
	gl := Glyph{Bytes: g.Bytes}
	switch {
	case g.IsLineBreak():
		gl.LineBreak = true
		if s.showCtrl {
			gl.Text, gl.Width = "␊", 1
		}
	case g.IsTab():
		gl.tab = true
		gl.wordBreak = true
		gl.Width = s.tabWidth - col%s.tabWidth
		gl.Text = " "
		if s.showCtrl {
			gl.Text = "␉"
		}
	case g.Text == grapheme.SoftHyphen:
		gl.hiddenBreak = true
		gl.hiddenText = "-"
		if s.showCtrl || s.wrapCtrl {
			gl.Text, gl.Width = "⸚", 1
		}
	case g.Text == grapheme.ZeroWidthSpace:
		gl.hiddenBreak = true
		gl.hiddenText = " "
		if s.showCtrl || s.wrapCtrl {
			gl.Text, gl.Width = "¨", 1
		}
	case g.IsControl():
		gl.Width = 1
		if s.showCtrl {
			gl.Text = controlPicture(g.Text)
		} else {
			gl.Text = "�"
		}
	default:
		gl.Text = g.Text
		gl.Width = g.Width
		gl.wordBreak = g.Text == " " || g.Text == "-"
	}
	return gl
}

// controlPicture returns the Unicode control-picture glyph for a C0
// control character or DEL.
func controlPicture(s string) string {
	b := s[0]
	if b < 0x20 {
		return string(rune(0x2400 + rune(b)))
	}
	if b == 0x7F {
		return "␡"
	}
	return "�"
}

// breakOpportunity reports whether a wrap may occur after this glyph.
func (gl Glyph) breakOpportunity() bool {
	return gl.hiddenBreak || gl.wordBreak
}

// materialize turns a hidden break chosen as a wrap point into its
// visible form.
func (gl *Glyph) materialize() {
	if gl.hiddenBreak && gl.Text == "" {
		gl.Text = gl.hiddenText
		gl.Width = runewidth.StringWidth(gl.hiddenText)
	}
}
