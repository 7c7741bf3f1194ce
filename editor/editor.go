package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/textcore/glyph"
	"github.com/dshills/textcore/metrics"
	"github.com/dshills/textcore/store"
	"github.com/dshills/textcore/style"
	"github.com/dshills/textcore/textpos"
	"github.com/dshills/textcore/undo"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the document.
	ByteOffset = textpos.ByteOffset

	// ByteRange is a half-open byte range.
	ByteRange = textpos.ByteRange

	// TextPosition is a (line, grapheme column) pair.
	TextPosition = textpos.TextPosition

	// TextRange is an ordered pair of text positions.
	TextRange = textpos.TextRange

	// Selection is an anchor and cursor position pair.
	Selection = textpos.Selection

	// StyleTag is an opaque caller-chosen style identifier.
	StyleTag = style.Tag

	// StyleSpan is a tagged byte range.
	StyleSpan = style.Span

	// WrapMode selects line wrapping behavior.
	WrapMode = glyph.WrapMode
)

// Re-export constants.
const (
	WrapNone = glyph.WrapNone
	WrapHard = glyph.WrapHard
	WrapWord = glyph.WrapWord
)

// SizeHint guides the storage backend choice at construction. The
// backend never switches mid-lifetime.
type SizeHint int

const (
	// SizeDocument selects the rope backend: multi-line documents of
	// any size, up to millions of lines.
	SizeDocument SizeHint = iota
	// SizeField selects the flat backend: short single-line content
	// such as text inputs and masked fields. Line breaks are rejected.
	SizeField
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithSizeHint selects the storage backend.
func WithSizeHint(h SizeHint) Option {
	return func(ed *Editor) {
		ed.hint = h
	}
}

// WithContent sets the initial document content.
func WithContent(content string) Option {
	return func(ed *Editor) {
		ed.initContent = content
	}
}

// WithClipboard injects the clipboard capability used by Cut, Copy and
// Paste.
func WithClipboard(c Clipboard) Option {
	return func(ed *Editor) {
		ed.clip = c
	}
}

// WithTabWidth sets the tab stop distance.
func WithTabWidth(n int) Option {
	return func(ed *Editor) {
		if n > 0 {
			ed.tabWidth = n
		}
	}
}

// WithShowControl renders control characters as picture glyphs.
func WithShowControl(show bool) Option {
	return func(ed *Editor) {
		ed.showCtrl = show
	}
}

// WithWrapControl renders hidden break opportunities visibly.
func WithWrapControl(show bool) Option {
	return func(ed *Editor) {
		ed.wrapCtrl = show
	}
}

// WithWrapMode sets the initial wrap mode.
func WithWrapMode(m WrapMode) Option {
	return func(ed *Editor) {
		ed.mode = m
	}
}

// WithViewportWidth sets the initial viewport width in screen columns.
func WithViewportWidth(w int) Option {
	return func(ed *Editor) {
		ed.viewport = w
	}
}

// WithHistoryLimit caps the undo history group count.
func WithHistoryLimit(n int) Option {
	return func(ed *Editor) {
		ed.historyLimit = n
	}
}

// Editor owns one document and everything derived from it. It is not
// safe for concurrent use.
type Editor struct {
	id      uuid.UUID
	store   store.Store
	styles  *style.Index
	history *undo.Engine
	cache   *metrics.Cache
	shaper  *glyph.Shaper

	sel  Selection
	clip Clipboard

	mode     WrapMode
	viewport int
	tabWidth int
	showCtrl bool
	wrapCtrl bool

	hint         SizeHint
	initContent  string
	historyLimit int
}

// New creates an editor.
func New(opts ...Option) (*Editor, error) {
	ed := &Editor{
		id:           uuid.New(),
		styles:       style.NewIndex(),
		tabWidth:     glyph.DefaultTabWidth,
		historyLimit: undo.DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(ed)
	}

	switch ed.hint {
	case SizeField:
		st, err := store.NewStringStoreFrom(ed.initContent)
		if err != nil {
			return nil, fmt.Errorf("editor: %w", err)
		}
		ed.store = st
	default:
		ed.store = store.NewRopeStoreFrom(ed.initContent)
	}
	ed.initContent = ""

	ed.history = undo.NewEngine(undo.WithHistoryLimit(ed.historyLimit))
	ed.shaper = glyph.NewShaper(
		glyph.WithTabWidth(ed.tabWidth),
		glyph.WithShowControl(ed.showCtrl),
		glyph.WithWrapControl(ed.wrapCtrl),
	)
	ed.cache = metrics.NewCache(ed.shapeLine)
	ed.cache.SetConfig(ed.mode, ed.viewport)
	return ed, nil
}

// ID returns the editor's unique identity, stable for its lifetime.
func (ed *Editor) ID() uuid.UUID {
	return ed.id
}

// Text returns the whole document.
func (ed *Editor) Text() string {
	return ed.store.String()
}

// SetText replaces the document, clearing history and styles.
func (ed *Editor) SetText(s string) error {
	if err := ed.store.SetString(s); err != nil {
		return err
	}
	ed.history.Clear()
	ed.styles.Clear()
	ed.cache.InvalidateAll()
	ed.sel = Selection{}
	return nil
}

// LenBytes returns the document's byte length.
func (ed *Editor) LenBytes() ByteOffset {
	return ed.store.LenBytes()
}

// LenLines returns the document's line count.
func (ed *Editor) LenLines() int {
	return ed.store.LenLines()
}

// LineText returns one line's content without its break.
func (ed *Editor) LineText(line int) (string, error) {
	r, err := ed.store.LineBytes(line)
	if err != nil {
		return "", err
	}
	return ed.store.Slice(r)
}

// Slice returns the text of a byte range.
func (ed *Editor) Slice(r ByteRange) (string, error) {
	return ed.store.Slice(r)
}

// ByteToPosition converts a byte offset to a text position.
func (ed *Editor) ByteToPosition(off ByteOffset) (TextPosition, error) {
	return ed.store.ByteToPosition(off)
}

// PositionToByte converts a text position to a byte offset.
func (ed *Editor) PositionToByte(pos TextPosition) (ByteOffset, error) {
	return ed.store.PositionToByte(pos)
}

// Selection returns the current selection.
func (ed *Editor) Selection() Selection {
	return ed.sel
}

// Cursor returns the current cursor position.
func (ed *Editor) Cursor() TextPosition {
	return ed.sel.Cursor
}

// HasSelection reports whether the selection spans any text.
func (ed *Editor) HasSelection() bool {
	return ed.sel.Anchor != ed.sel.Cursor
}

// SetWrap reconfigures wrapping. Cached metrics computed under the old
// configuration become stale, not invalid.
func (ed *Editor) SetWrap(mode WrapMode, viewport int) {
	ed.mode = mode
	ed.viewport = viewport
	ed.cache.SetConfig(mode, viewport)
}

// WrapMode returns the active wrap mode.
func (ed *Editor) WrapMode() WrapMode {
	return ed.mode
}

// LineWidth returns a line's screen width under the current wrap
// configuration.
func (ed *Editor) LineWidth(line int) (int, error) {
	return ed.cache.LineWidth(line)
}

// WrapSegments returns the byte ranges of a line's wrap rows.
func (ed *Editor) WrapSegments(line int) ([]ByteRange, error) {
	return ed.cache.WrapSegments(line)
}

// CacheStats returns the metrics cache traffic counters.
func (ed *Editor) CacheStats() metrics.Stats {
	return ed.cache.Stats()
}

// LineGlyphs returns a glyph iterator for one line under the current
// wrap configuration.
func (ed *Editor) LineGlyphs(line int) (*glyph.Iter, error) {
	return ed.shapeLine(line, ed.mode, ed.viewport)
}

// shapeLine builds a glyph iterator over a line including its trailing
// break. The same function backs the metrics cache.
func (ed *Editor) shapeLine(line int, mode WrapMode, viewport int) (*glyph.Iter, error) {
	r, err := ed.store.LineBytes(line)
	if err != nil {
		return nil, err
	}
	end := r.End
	if line+1 < ed.store.LenLines() {
		next, err := ed.store.LineBytes(line + 1)
		if err != nil {
			return nil, err
		}
		end = next.Start
	}
	src, err := ed.store.Graphemes(textpos.NewByteRange(r.Start, end))
	if err != nil {
		return nil, err
	}
	return ed.shaper.Line(src, line, mode, viewport), nil
}

// applyDelta pushes one edit delta to every derived structure.
func (ed *Editor) applyDelta(d store.EditDelta) {
	ed.styles.Apply(d)
	ed.cache.Apply(d)
}

// selByteRange resolves the selection to an ordered byte range.
func (ed *Editor) selByteRange() (ByteRange, error) {
	lo := ed.sel.Anchor.Min(ed.sel.Cursor)
	hi := ed.sel.Anchor.Max(ed.sel.Cursor)
	start, err := ed.store.PositionToByte(lo)
	if err != nil {
		return ByteRange{}, err
	}
	end, err := ed.store.PositionToByte(hi)
	if err != nil {
		return ByteRange{}, err
	}
	return textpos.NewByteRange(start, end), nil
}
