package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/textcore/grapheme"
	"github.com/dshills/textcore/store"
	"github.com/dshills/textcore/textpos"
	"github.com/dshills/textcore/undo"
)

// InsertText inserts text at the cursor, replacing the selection if one
// exists. The replacement and the insertion undo as one group.
func (ed *Editor) InsertText(text string) (Outcome, error) {
	if text == "" {
		return OutcomeUnchanged, nil
	}
	before := ed.sel

	if ed.HasSelection() {
		r, err := ed.selByteRange()
		if err != nil {
			return OutcomeUnchanged, err
		}
		ed.history.BeginGroup(before)
		if _, err := ed.deleteBytes(r, before); err != nil {
			ed.history.EndGroup(before)
			return OutcomeUnchanged, err
		}
		if err := ed.insertBytes(r.Start, text, ed.sel); err != nil {
			ed.history.EndGroup(ed.sel)
			return OutcomeTextChanged, err
		}
		ed.history.EndGroup(ed.sel)
		return OutcomeTextChanged, nil
	}

	off, err := ed.store.PositionToByte(ed.sel.Cursor)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if err := ed.insertBytes(off, text, before); err != nil {
		return OutcomeUnchanged, err
	}
	return OutcomeTextChanged, nil
}

// DeleteSelection removes the selected text. With no selection it is a
// no-op and records nothing.
func (ed *Editor) DeleteSelection() (Outcome, error) {
	if !ed.HasSelection() {
		return OutcomeUnchanged, nil
	}
	r, err := ed.selByteRange()
	if err != nil {
		return OutcomeUnchanged, err
	}
	if _, err := ed.deleteBytes(r, ed.sel); err != nil {
		return OutcomeUnchanged, err
	}
	return OutcomeTextChanged, nil
}

// DeleteBackward removes the selection, or the grapheme cluster before
// the cursor. At the start of a line it joins it to the previous line.
func (ed *Editor) DeleteBackward() (Outcome, error) {
	if ed.HasSelection() {
		return ed.DeleteSelection()
	}
	off, err := ed.store.PositionToByte(ed.sel.Cursor)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if off == 0 {
		return OutcomeUnchanged, nil
	}
	start, err := ed.prevBoundary(off)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if _, err := ed.deleteBytes(textpos.NewByteRange(start, off), ed.sel); err != nil {
		return OutcomeUnchanged, err
	}
	return OutcomeTextChanged, nil
}

// DeleteForward removes the selection, or the grapheme cluster after
// the cursor. At the end of a line it joins the next line to it.
func (ed *Editor) DeleteForward() (Outcome, error) {
	if ed.HasSelection() {
		return ed.DeleteSelection()
	}
	off, err := ed.store.PositionToByte(ed.sel.Cursor)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if off == ed.store.LenBytes() {
		return OutcomeUnchanged, nil
	}
	end, err := ed.nextBoundary(off)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if _, err := ed.deleteBytes(textpos.NewByteRange(off, end), ed.sel); err != nil {
		return OutcomeUnchanged, err
	}
	return OutcomeTextChanged, nil
}

// SetCursor moves the cursor. With extend the anchor stays put and the
// selection grows; otherwise the selection collapses.
func (ed *Editor) SetCursor(pos TextPosition, extend bool) (Outcome, error) {
	if _, err := ed.store.PositionToByte(pos); err != nil {
		return OutcomeUnchanged, err
	}
	next := Selection{Anchor: pos, Cursor: pos}
	if extend {
		next.Anchor = ed.sel.Anchor
	}
	if next == ed.sel {
		return OutcomeUnchanged, nil
	}
	ed.sel = next
	return OutcomeChanged, nil
}

// SetSelection sets the selection to a text range, cursor at its end.
func (ed *Editor) SetSelection(r TextRange) (Outcome, error) {
	if r.IsMax() {
		return ed.SelectAll()
	}
	if _, err := ed.store.PositionToByte(r.Start); err != nil {
		return OutcomeUnchanged, err
	}
	if _, err := ed.store.PositionToByte(r.End); err != nil {
		return OutcomeUnchanged, err
	}
	next := Selection{Anchor: r.Start, Cursor: r.End}
	if next == ed.sel {
		return OutcomeUnchanged, nil
	}
	ed.sel = next
	return OutcomeChanged, nil
}

// SelectAll selects the whole document.
func (ed *Editor) SelectAll() (Outcome, error) {
	endPos, err := ed.store.ByteToPosition(ed.store.LenBytes())
	if err != nil {
		return OutcomeUnchanged, err
	}
	next := Selection{Anchor: textpos.Pos(0, 0), Cursor: endPos}
	if next == ed.sel {
		return OutcomeUnchanged, nil
	}
	ed.sel = next
	return OutcomeChanged, nil
}

// BeginUndoSeq opens an undo group; edits until EndUndoSeq undo as one
// unit.
func (ed *Editor) BeginUndoSeq() {
	ed.history.BeginGroup(ed.sel)
}

// EndUndoSeq closes the current undo group.
func (ed *Editor) EndUndoSeq() {
	ed.history.EndGroup(ed.sel)
}

// Undo reverts the most recent undo group and restores the selection
// captured before it. With an empty history it reports
// OutcomeUnchanged; that is not an error.
func (ed *Editor) Undo() (Outcome, error) {
	g, ok := ed.history.Undo()
	if !ok {
		return OutcomeUnchanged, nil
	}
	for i := len(g.Ops) - 1; i >= 0; i-- {
		if err := ed.replay(g.Ops[i].Invert()); err != nil {
			return OutcomeTextChanged, fmt.Errorf("undo: %w", err)
		}
	}
	ed.sel = g.Before
	return OutcomeTextChanged, nil
}

// Redo reapplies the most recently undone group.
func (ed *Editor) Redo() (Outcome, error) {
	g, ok := ed.history.Redo()
	if !ok {
		return OutcomeUnchanged, nil
	}
	for _, op := range g.Ops {
		if err := ed.replay(op); err != nil {
			return OutcomeTextChanged, fmt.Errorf("redo: %w", err)
		}
	}
	ed.sel = g.After
	return OutcomeTextChanged, nil
}

// RemainingUndo returns the number of undoable groups.
func (ed *Editor) RemainingUndo() int {
	return ed.history.RemainingUndo()
}

// RemainingRedo returns the number of redoable groups.
func (ed *Editor) RemainingRedo() int {
	return ed.history.RemainingRedo()
}

// Copy places the selected text on the clipboard.
func (ed *Editor) Copy() (Outcome, error) {
	if ed.clip == nil || !ed.HasSelection() {
		return OutcomeContinue, nil
	}
	r, err := ed.selByteRange()
	if err != nil {
		return OutcomeUnchanged, err
	}
	text, err := ed.store.Slice(r)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if err := ed.clip.Set(text); err != nil {
		return OutcomeUnchanged, fmt.Errorf("clipboard: %w", err)
	}
	return OutcomeUnchanged, nil
}

// Cut copies the selection and deletes it.
func (ed *Editor) Cut() (Outcome, error) {
	if ed.clip == nil || !ed.HasSelection() {
		return OutcomeContinue, nil
	}
	if _, err := ed.Copy(); err != nil {
		return OutcomeUnchanged, err
	}
	return ed.DeleteSelection()
}

// Paste inserts the clipboard text at the cursor.
func (ed *Editor) Paste() (Outcome, error) {
	if ed.clip == nil {
		return OutcomeContinue, nil
	}
	text, err := ed.clip.Get()
	if err != nil {
		return OutcomeUnchanged, fmt.Errorf("clipboard: %w", err)
	}
	return ed.InsertText(text)
}

// AddStyle adds a style span; it participates in undo.
func (ed *Editor) AddStyle(r ByteRange, tag StyleTag) error {
	if err := ed.styles.Add(r, tag); err != nil {
		return err
	}
	ed.history.Record(undo.StyleAdd(r, tag), ed.sel, ed.sel)
	return nil
}

// AddStyleRange adds a style span given as a text range.
func (ed *Editor) AddStyleRange(tr TextRange, tag StyleTag) error {
	r, err := ed.resolveRange(tr)
	if err != nil {
		return err
	}
	return ed.AddStyle(r, tag)
}

// RemoveStyle removes an exactly matching style span.
func (ed *Editor) RemoveStyle(r ByteRange, tag StyleTag) error {
	if !ed.styles.Remove(r, tag) {
		return fmt.Errorf("style %v tag %d: %w", r, tag, textpos.ErrEmptyOperation)
	}
	ed.history.Record(undo.StyleRemove(r, tag), ed.sel, ed.sel)
	return nil
}

// ClearStyles drops every style span, outside of undo.
func (ed *Editor) ClearStyles() {
	ed.styles.Clear()
}

// StylesIn returns the style spans overlapping a byte range.
func (ed *Editor) StylesIn(r ByteRange) []StyleSpan {
	return ed.styles.StylesIn(r)
}

// StylesAt returns the tags of the spans containing a byte offset.
func (ed *Editor) StylesAt(off ByteOffset) []StyleTag {
	return ed.styles.StylesAt(off)
}

// resolveRange converts a text range to a byte range, honoring the
// to-end-of-document sentinel.
func (ed *Editor) resolveRange(tr TextRange) (ByteRange, error) {
	if tr.IsMax() {
		return textpos.NewByteRange(0, ed.store.LenBytes()), nil
	}
	start, err := ed.store.PositionToByte(tr.Start)
	if err != nil {
		return ByteRange{}, err
	}
	end, err := ed.store.PositionToByte(tr.End)
	if err != nil {
		return ByteRange{}, err
	}
	return textpos.NewByteRange(start, end), nil
}

// insertBytes applies one insertion, updates derived state, records it
// and moves the cursor behind the inserted text.
func (ed *Editor) insertBytes(off ByteOffset, text string, before Selection) error {
	d, err := ed.store.Insert(off, text)
	if err != nil {
		return err
	}
	ed.applyDelta(d)
	pos, err := ed.store.ByteToPosition(off + len(text))
	if err != nil {
		return fmt.Errorf("cursor after insert: %w", err)
	}
	ed.sel = Selection{Anchor: pos, Cursor: pos}
	ed.history.Record(undo.Insert(off, text), before, ed.sel)
	return nil
}

// deleteBytes applies one deletion, updates derived state, records it
// and collapses the cursor to the deletion point. Spans fully inside
// the deleted range vanish in the style shrink; they are recorded
// ahead of the delete so undo restores them with the text.
func (ed *Editor) deleteBytes(r ByteRange, before Selection) (store.EditDelta, error) {
	var dropped []StyleSpan
	for _, sp := range ed.styles.StylesIn(r) {
		if r.ContainsRange(sp.Range) {
			dropped = append(dropped, sp)
		}
	}

	d, err := ed.store.Delete(r)
	if err != nil {
		return store.EditDelta{}, err
	}
	ed.applyDelta(d)
	pos, err := ed.store.ByteToPosition(r.Start)
	if err != nil {
		return d, fmt.Errorf("cursor after delete: %w", err)
	}
	ed.sel = Selection{Anchor: pos, Cursor: pos}

	grouped := len(dropped) > 0 && !ed.history.Grouping()
	if grouped {
		ed.history.BeginGroup(before)
	}
	for _, sp := range dropped {
		ed.history.Record(undo.StyleRemove(sp.Range, sp.Tag), before, before)
	}
	ed.history.Record(undo.Delete(r.Start, d.RemovedText), before, ed.sel)
	if grouped {
		ed.history.EndGroup(ed.sel)
	}
	return d, nil
}

// replay applies one history op without recording it again.
func (ed *Editor) replay(op undo.Op) error {
	switch op.Kind {
	case undo.OpInsert:
		d, err := ed.store.Insert(op.Offset, op.Text)
		if err != nil {
			return err
		}
		ed.applyDelta(d)
	case undo.OpDelete:
		r := textpos.NewByteRange(op.Offset, op.Offset+len(op.Text))
		d, err := ed.store.Delete(r)
		if err != nil {
			return err
		}
		ed.applyDelta(d)
	case undo.OpStyleAdd:
		return ed.styles.Add(op.Range, op.Tag)
	case undo.OpStyleRemove:
		if !ed.styles.Remove(op.Range, op.Tag) {
			return fmt.Errorf("style %v tag %d: %w", op.Range, op.Tag, textpos.ErrEmptyOperation)
		}
	default:
		return errors.New("unknown history op")
	}
	return nil
}

// prevBoundary returns the start of the grapheme cluster ending at off.
// At a line start it swallows the previous line's break.
func (ed *Editor) prevBoundary(off ByteOffset) (ByteOffset, error) {
	pos, err := ed.store.ByteToPosition(off)
	if err != nil {
		return 0, err
	}
	if pos.Col == 0 {
		// Delete the break joining this line to the previous one.
		r, err := ed.store.LineBytes(int(pos.Line) - 1)
		if err != nil {
			return 0, err
		}
		return r.End, nil
	}
	r, err := ed.store.LineBytes(int(pos.Line))
	if err != nil {
		return 0, err
	}
	text, err := ed.store.Slice(r)
	if err != nil {
		return 0, err
	}
	return r.Start + grapheme.PrevBoundary(text, off-r.Start), nil
}

// nextBoundary returns the end of the grapheme cluster starting at off.
// At a line end it swallows the line's break.
func (ed *Editor) nextBoundary(off ByteOffset) (ByteOffset, error) {
	pos, err := ed.store.ByteToPosition(off)
	if err != nil {
		return 0, err
	}
	r, err := ed.store.LineBytes(int(pos.Line))
	if err != nil {
		return 0, err
	}
	if off >= r.End {
		// Delete the break joining the next line to this one.
		next, err := ed.store.LineBytes(int(pos.Line) + 1)
		if err != nil {
			return 0, err
		}
		return next.Start, nil
	}
	text, err := ed.store.Slice(r)
	if err != nil {
		return 0, err
	}
	return r.Start + grapheme.NextBoundary(text, off-r.Start), nil
}
