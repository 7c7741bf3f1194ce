package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/textcore/textpos"
)

func mustEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	ed, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ed
}

func mustOutcome(t *testing.T, got Outcome, err error, want Outcome) {
	t.Helper()
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if got != want {
		t.Fatalf("outcome = %v, want %v", got, want)
	}
}

func TestNewBackendChoice(t *testing.T) {
	ed := mustEditor(t, WithContent("a\nb"))
	if ed.LenLines() != 2 {
		t.Errorf("document editor lines = %d", ed.LenLines())
	}

	if _, err := New(WithSizeHint(SizeField), WithContent("a\nb")); err == nil {
		t.Error("field editor accepted a line break")
	}
	fed := mustEditor(t, WithSizeHint(SizeField), WithContent("query"))
	if fed.Text() != "query" {
		t.Errorf("field text = %q", fed.Text())
	}
}

func TestEditorIdentity(t *testing.T) {
	a := mustEditor(t)
	b := mustEditor(t)
	if a.ID() == b.ID() {
		t.Error("two editors share an ID")
	}
}

func TestInsertMovesCursor(t *testing.T) {
	ed := mustEditor(t)
	out, err := ed.InsertText("héllo")
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != "héllo" {
		t.Errorf("text = %q", ed.Text())
	}
	if ed.Cursor() != textpos.Pos(0, 5) {
		t.Errorf("cursor = %v, want (0,5)", ed.Cursor())
	}

	out, err = ed.InsertText("\nwörld")
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Cursor() != textpos.Pos(1, 5) {
		t.Errorf("cursor = %v, want (1,5)", ed.Cursor())
	}
	if ed.LenLines() != 2 {
		t.Errorf("lines = %d", ed.LenLines())
	}
}

func TestInsertEmptyIsNoop(t *testing.T) {
	ed := mustEditor(t, WithContent("x"))
	out, err := ed.InsertText("")
	mustOutcome(t, out, err, OutcomeUnchanged)
	if ed.RemainingUndo() != 0 {
		t.Error("empty insert recorded history")
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	ed := mustEditor(t, WithContent("one two three"))
	if _, err := ed.SetSelection(textpos.NewTextRange(textpos.Pos(0, 4), textpos.Pos(0, 7))); err != nil {
		t.Fatal(err)
	}
	out, err := ed.InsertText("2")
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != "one 2 three" {
		t.Errorf("text = %q", ed.Text())
	}

	// Replacement undoes as one unit.
	out, err = ed.Undo()
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != "one two three" {
		t.Errorf("text after undo = %q", ed.Text())
	}
	if ed.Selection() != (Selection{Anchor: textpos.Pos(0, 4), Cursor: textpos.Pos(0, 7)}) {
		t.Errorf("selection after undo = %v", ed.Selection())
	}
}

func TestDeleteSelectionEmptyIsNoop(t *testing.T) {
	ed := mustEditor(t, WithContent("abc"))
	out, err := ed.DeleteSelection()
	mustOutcome(t, out, err, OutcomeUnchanged)
	if ed.RemainingUndo() != 0 {
		t.Error("no-op delete recorded history")
	}
}

func TestDeleteBackward(t *testing.T) {
	ed := mustEditor(t, WithContent("ab🙂\ncd"))

	// At document start: nothing happens.
	out, err := ed.DeleteBackward()
	mustOutcome(t, out, err, OutcomeUnchanged)

	// After the emoji: one cluster goes.
	if _, err := ed.SetCursor(textpos.Pos(0, 3), false); err != nil {
		t.Fatal(err)
	}
	out, err = ed.DeleteBackward()
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != "ab\ncd" {
		t.Errorf("text = %q", ed.Text())
	}

	// At a line start: the lines join.
	if _, err := ed.SetCursor(textpos.Pos(1, 0), false); err != nil {
		t.Fatal(err)
	}
	out, err = ed.DeleteBackward()
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != "abcd" {
		t.Errorf("text = %q", ed.Text())
	}
	if ed.Cursor() != textpos.Pos(0, 2) {
		t.Errorf("cursor = %v", ed.Cursor())
	}
}

func TestDeleteForward(t *testing.T) {
	ed := mustEditor(t, WithContent("ab\r\ncd"))

	// At a line end: the whole CRLF goes.
	if _, err := ed.SetCursor(textpos.Pos(0, 2), false); err != nil {
		t.Fatal(err)
	}
	out, err := ed.DeleteForward()
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != "abcd" {
		t.Errorf("text = %q", ed.Text())
	}

	// At document end: nothing happens.
	if _, err := ed.SetCursor(textpos.Pos(0, 4), false); err != nil {
		t.Fatal(err)
	}
	out, err = ed.DeleteForward()
	mustOutcome(t, out, err, OutcomeUnchanged)
}

func TestSetCursorOutcomes(t *testing.T) {
	ed := mustEditor(t, WithContent("hello"))
	out, err := ed.SetCursor(textpos.Pos(0, 3), false)
	mustOutcome(t, out, err, OutcomeChanged)
	out, err = ed.SetCursor(textpos.Pos(0, 3), false)
	mustOutcome(t, out, err, OutcomeUnchanged)

	if _, err := ed.SetCursor(textpos.Pos(0, 99), false); !errors.Is(err, textpos.ErrInvalidBoundary) {
		t.Errorf("bad cursor err = %v", err)
	}

	out, err = ed.SetCursor(textpos.Pos(0, 5), true)
	mustOutcome(t, out, err, OutcomeChanged)
	if !ed.HasSelection() || ed.Selection().Anchor != textpos.Pos(0, 3) {
		t.Errorf("selection = %v", ed.Selection())
	}
}

func TestSelectAllAndMaxRange(t *testing.T) {
	ed := mustEditor(t, WithContent("ab\ncd"))
	out, err := ed.SetSelection(textpos.MaxRange)
	mustOutcome(t, out, err, OutcomeChanged)
	if ed.Selection().Cursor != textpos.Pos(1, 2) {
		t.Errorf("cursor = %v, want document end", ed.Selection().Cursor)
	}
}

func TestGroupingLaw(t *testing.T) {
	ed := mustEditor(t)

	ed.BeginUndoSeq()
	if _, err := ed.InsertText("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.InsertText("b"); err != nil {
		t.Fatal(err)
	}
	ed.EndUndoSeq()

	if ed.RemainingUndo() != 1 {
		t.Fatalf("RemainingUndo = %d, want 1", ed.RemainingUndo())
	}
	out, err := ed.Undo()
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != "" {
		t.Errorf("text after undo = %q", ed.Text())
	}
	if ed.Selection() != (Selection{}) {
		t.Errorf("selection not restored: %v", ed.Selection())
	}
}

func TestUndoInverseLaw(t *testing.T) {
	ed := mustEditor(t, WithContent("base\ntext"))
	start := ed.Text()
	startSel := ed.Selection()

	edits := []func() (Outcome, error){
		func() (Outcome, error) { return ed.InsertText("héllo ") },
		func() (Outcome, error) { _, err := ed.SetCursor(textpos.Pos(1, 4), false); return OutcomeChanged, err },
		func() (Outcome, error) { return ed.InsertText("\nmore🙂") },
		func() (Outcome, error) { return ed.DeleteBackward() },
		func() (Outcome, error) { return ed.DeleteBackward() },
	}
	for i, edit := range edits {
		if _, err := edit(); err != nil {
			t.Fatalf("edit %d: %v", i, err)
		}
	}

	for ed.RemainingUndo() > 0 {
		if _, err := ed.Undo(); err != nil {
			t.Fatalf("Undo: %v", err)
		}
	}
	if ed.Text() != start {
		t.Errorf("text after full undo = %q, want %q", ed.Text(), start)
	}
	if ed.Selection() != startSel {
		t.Errorf("selection after full undo = %v, want %v", ed.Selection(), startSel)
	}

	// And forward again.
	for ed.RemainingRedo() > 0 {
		if _, err := ed.Redo(); err != nil {
			t.Fatalf("Redo: %v", err)
		}
	}
	if ed.Text() != "héllo base\ntext\nmor" {
		t.Errorf("text after full redo = %q", ed.Text())
	}
}

func TestUndoEmptyStack(t *testing.T) {
	ed := mustEditor(t, WithContent("x"))
	out, err := ed.Undo()
	mustOutcome(t, out, err, OutcomeUnchanged)
	out, err = ed.Redo()
	mustOutcome(t, out, err, OutcomeUnchanged)
}

func TestClipboard(t *testing.T) {
	clip := &MemClipboard{}
	ed := mustEditor(t, WithContent("hello world"), WithClipboard(clip))

	// Nothing selected: clipboard commands do not apply.
	out, err := ed.Copy()
	mustOutcome(t, out, err, OutcomeContinue)

	if _, err := ed.SetSelection(textpos.NewTextRange(textpos.Pos(0, 0), textpos.Pos(0, 5))); err != nil {
		t.Fatal(err)
	}
	out, err = ed.Cut()
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != " world" {
		t.Errorf("text after cut = %q", ed.Text())
	}

	if _, err := ed.SetCursor(textpos.Pos(0, 6), false); err != nil {
		t.Fatal(err)
	}
	out, err = ed.Paste()
	mustOutcome(t, out, err, OutcomeTextChanged)
	if ed.Text() != " worldhello" {
		t.Errorf("text after paste = %q", ed.Text())
	}
}

func TestClipboardNotInjected(t *testing.T) {
	ed := mustEditor(t, WithContent("abc"))
	if _, err := ed.SetSelection(textpos.NewTextRange(textpos.Pos(0, 0), textpos.Pos(0, 3))); err != nil {
		t.Fatal(err)
	}
	out, err := ed.Cut()
	mustOutcome(t, out, err, OutcomeContinue)
	if ed.Text() != "abc" {
		t.Errorf("cut without clipboard changed text to %q", ed.Text())
	}
	out, err = ed.Paste()
	mustOutcome(t, out, err, OutcomeContinue)
}

func TestStylesShiftWithEdits(t *testing.T) {
	ed := mustEditor(t, WithContent("hello world"))
	if err := ed.AddStyle(textpos.NewByteRange(6, 11), 1); err != nil {
		t.Fatalf("AddStyle: %v", err)
	}

	if _, err := ed.SetCursor(textpos.Pos(0, 0), false); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.InsertText(">> "); err != nil {
		t.Fatal(err)
	}

	got := ed.StylesIn(textpos.NewByteRange(0, ed.LenBytes()))
	want := []StyleSpan{{Range: textpos.NewByteRange(9, 14), Tag: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("styles after insert = %v, want %v", got, want)
	}
}

func TestStyleUndo(t *testing.T) {
	ed := mustEditor(t, WithContent("hello"))
	if err := ed.AddStyle(textpos.NewByteRange(0, 5), 3); err != nil {
		t.Fatal(err)
	}
	if len(ed.StylesAt(2)) != 1 {
		t.Fatal("style not applied")
	}
	if _, err := ed.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(ed.StylesAt(2)) != 0 {
		t.Error("style survived undo")
	}
	if _, err := ed.Redo(); err != nil {
		t.Fatal(err)
	}
	if len(ed.StylesAt(2)) != 1 {
		t.Error("style not restored by redo")
	}
}

func TestDeleteRestoresContainedStyles(t *testing.T) {
	ed := mustEditor(t, WithContent("hello world"))
	if err := ed.AddStyle(textpos.NewByteRange(6, 11), 2); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.SetSelection(textpos.NewTextRange(textpos.Pos(0, 5), textpos.Pos(0, 11))); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.DeleteSelection(); err != nil {
		t.Fatal(err)
	}
	if ed.Text() != "hello" {
		t.Fatalf("Text = %q", ed.Text())
	}
	if got := ed.StylesIn(textpos.NewByteRange(0, ed.LenBytes())); len(got) != 0 {
		t.Fatalf("styles after delete = %v", got)
	}

	// One undo restores the text and the span it carried.
	if _, err := ed.Undo(); err != nil {
		t.Fatal(err)
	}
	if ed.Text() != "hello world" {
		t.Errorf("Text after undo = %q", ed.Text())
	}
	want := []StyleSpan{{Range: textpos.NewByteRange(6, 11), Tag: 2}}
	if got := ed.StylesIn(textpos.NewByteRange(0, ed.LenBytes())); !reflect.DeepEqual(got, want) {
		t.Errorf("styles after undo = %v, want %v", got, want)
	}

	if _, err := ed.Redo(); err != nil {
		t.Fatal(err)
	}
	if got := ed.StylesIn(textpos.NewByteRange(0, ed.LenBytes())); len(got) != 0 {
		t.Errorf("styles after redo = %v", got)
	}
}

func TestRemoveStyleMissing(t *testing.T) {
	ed := mustEditor(t, WithContent("hello"))
	if err := ed.RemoveStyle(textpos.NewByteRange(0, 5), 3); !errors.Is(err, textpos.ErrEmptyOperation) {
		t.Errorf("RemoveStyle missing err = %v", err)
	}
}

func TestSetTextResets(t *testing.T) {
	ed := mustEditor(t, WithContent("old"))
	if _, err := ed.InsertText("x"); err != nil {
		t.Fatal(err)
	}
	if err := ed.AddStyle(textpos.NewByteRange(0, 2), 1); err != nil {
		t.Fatal(err)
	}

	if err := ed.SetText("new"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if ed.Text() != "new" || ed.RemainingUndo() != 0 || len(ed.StylesIn(textpos.NewByteRange(0, 3))) != 0 {
		t.Error("SetText did not reset state")
	}
	if ed.Selection() != (Selection{}) {
		t.Errorf("selection = %v", ed.Selection())
	}
}

func TestScreenMapping(t *testing.T) {
	ed := mustEditor(t, WithContent("the quick brown fox"))
	ed.SetWrap(WrapWord, 10)

	// "the quick " / "brown fox": cell (1, 2) is the 'o' of brown.
	off, err := ed.ScreenToByte(0, 1, 2)
	if err != nil {
		t.Fatalf("ScreenToByte: %v", err)
	}
	if ed.Text()[off] != 'o' {
		t.Errorf("cell (1,2) = byte %d (%q)", off, ed.Text()[off])
	}

	line, row, col, err := ed.ByteToScreen(off)
	if err != nil {
		t.Fatalf("ByteToScreen: %v", err)
	}
	if line != 0 || row != 1 || col != 2 {
		t.Errorf("ByteToScreen = (%d,%d,%d), want (0,1,2)", line, row, col)
	}

	// Past the end of a row: cursor lands after the row's last glyph.
	off, err = ed.ScreenToByte(0, 1, 80)
	if err != nil {
		t.Fatalf("ScreenToByte past end: %v", err)
	}
	if off != ed.LenBytes() {
		t.Errorf("past-end offset = %d, want %d", off, ed.LenBytes())
	}
}

func TestScreenMappingWideGlyphs(t *testing.T) {
	ed := mustEditor(t, WithContent("a界b"))

	// Both cells of the double-width glyph map to it.
	for _, col := range []int{1, 2} {
		off, err := ed.ScreenToByte(0, 0, col)
		if err != nil {
			t.Fatalf("ScreenToByte col %d: %v", col, err)
		}
		if off != 1 {
			t.Errorf("col %d offset = %d, want 1", col, off)
		}
	}
	off, err := ed.ScreenToByte(0, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if off != 4 {
		t.Errorf("col 3 offset = %d, want 4", off)
	}
}

func TestWrapConfigAffectsMetrics(t *testing.T) {
	ed := mustEditor(t, WithContent("the quick brown fox"))
	ed.SetWrap(WrapNone, 0)
	w, err := ed.LineWidth(0)
	if err != nil {
		t.Fatal(err)
	}
	if w != 19 {
		t.Errorf("unwrapped width = %d", w)
	}

	ed.SetWrap(WrapWord, 10)
	segs, err := ed.WrapSegments(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(segs) != 2 {
		t.Errorf("segments = %v", segs)
	}
}
