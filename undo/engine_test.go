package undo

import (
	"testing"

	"github.com/dshills/textcore/textpos"
)

func sel(line, col uint32) textpos.Selection {
	p := textpos.Pos(line, col)
	return textpos.Selection{Anchor: p, Cursor: p}
}

func TestImplicitGroups(t *testing.T) {
	e := NewEngine(WithoutTypingMerge())

	e.Record(Insert(0, "a"), sel(0, 0), sel(0, 1))
	e.Record(Insert(1, "b"), sel(0, 1), sel(0, 2))
	if e.RemainingUndo() != 2 {
		t.Fatalf("RemainingUndo = %d, want 2", e.RemainingUndo())
	}

	g, ok := e.Undo()
	if !ok {
		t.Fatal("Undo = false")
	}
	if len(g.Ops) != 1 || g.Ops[0].Text != "b" {
		t.Errorf("undone group = %+v", g)
	}
	if g.Before != sel(0, 1) {
		t.Errorf("Before = %v", g.Before)
	}
	if e.RemainingRedo() != 1 {
		t.Errorf("RemainingRedo = %d, want 1", e.RemainingRedo())
	}
}

func TestExplicitGrouping(t *testing.T) {
	e := NewEngine()

	e.BeginGroup(sel(0, 0))
	e.Record(Insert(0, "a"), sel(0, 0), sel(0, 1))
	e.Record(Insert(1, "b"), sel(0, 1), sel(0, 2))
	e.EndGroup(sel(0, 2))

	if e.RemainingUndo() != 1 {
		t.Fatalf("RemainingUndo = %d, want 1", e.RemainingUndo())
	}
	g, ok := e.Undo()
	if !ok || len(g.Ops) != 2 {
		t.Fatalf("Undo = %+v %v", g, ok)
	}
	if g.Before != sel(0, 0) || g.After != sel(0, 2) {
		t.Errorf("selections = %v %v", g.Before, g.After)
	}
	if g.Ops[0].Text != "a" || g.Ops[1].Text != "b" {
		t.Errorf("op order = %+v", g.Ops)
	}
}

func TestNestedGroupsCollapse(t *testing.T) {
	e := NewEngine()
	e.BeginGroup(sel(0, 0))
	e.Record(Insert(0, "a"), sel(0, 0), sel(0, 1))
	e.BeginGroup(sel(0, 1))
	e.Record(Insert(1, "b"), sel(0, 1), sel(0, 2))
	e.EndGroup(sel(0, 2))
	if !e.Grouping() {
		t.Error("outer group closed by inner EndGroup")
	}
	e.EndGroup(sel(0, 2))

	if e.RemainingUndo() != 1 {
		t.Errorf("RemainingUndo = %d, want 1", e.RemainingUndo())
	}
}

func TestEmptyGroupDiscarded(t *testing.T) {
	e := NewEngine()
	e.BeginGroup(sel(0, 0))
	e.EndGroup(sel(0, 0))
	if e.RemainingUndo() != 0 {
		t.Errorf("empty group was pushed: RemainingUndo = %d", e.RemainingUndo())
	}
	if _, ok := e.Undo(); ok {
		t.Error("Undo on empty stack = true")
	}
	if _, ok := e.Redo(); ok {
		t.Error("Redo on empty stack = true")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	e := NewEngine(WithoutTypingMerge())
	e.Record(Insert(0, "a"), sel(0, 0), sel(0, 1))
	e.Record(Insert(1, "b"), sel(0, 1), sel(0, 2))
	e.Undo()
	if e.RemainingRedo() != 1 {
		t.Fatalf("RemainingRedo = %d, want 1", e.RemainingRedo())
	}

	e.Record(Insert(1, "c"), sel(0, 1), sel(0, 2))
	if e.RemainingRedo() != 0 {
		t.Errorf("redo not cleared: %d", e.RemainingRedo())
	}
}

func TestTypingMerge(t *testing.T) {
	e := NewEngine()
	e.Record(Insert(0, "a"), sel(0, 0), sel(0, 1))
	e.Record(Insert(1, "b"), sel(0, 1), sel(0, 2))
	e.Record(Insert(2, "c"), sel(0, 2), sel(0, 3))

	if e.RemainingUndo() != 1 {
		t.Fatalf("RemainingUndo = %d, want 1 merged group", e.RemainingUndo())
	}
	g, _ := e.Undo()
	if len(g.Ops) != 1 || g.Ops[0].Text != "abc" {
		t.Errorf("merged group = %+v", g.Ops)
	}
	if g.Before != sel(0, 0) || g.After != sel(0, 3) {
		t.Errorf("selections = %v %v", g.Before, g.After)
	}
}

func TestTypingMergeBreaks(t *testing.T) {
	tests := []struct {
		name   string
		second Op
		groups int
	}{
		{"non-adjacent", Insert(5, "b"), 2},
		{"line break", Insert(1, "\n"), 2},
		{"multi-cluster", Insert(1, "bc"), 2},
		{"delete", Delete(0, "a"), 2},
		{"adjacent single", Insert(1, "b"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			e.Record(Insert(0, "a"), sel(0, 0), sel(0, 1))
			e.Record(tt.second, sel(0, 1), sel(0, 2))
			if e.RemainingUndo() != tt.groups {
				t.Errorf("RemainingUndo = %d, want %d", e.RemainingUndo(), tt.groups)
			}
		})
	}
}

func TestTypingMergeCombiningCluster(t *testing.T) {
	// e followed by a combining accent is still one cluster.
	e := NewEngine()
	e.Record(Insert(0, "a"), sel(0, 0), sel(0, 1))
	e.Record(Insert(1, "é"), sel(0, 1), sel(0, 2))
	if e.RemainingUndo() != 1 {
		t.Errorf("RemainingUndo = %d, want 1", e.RemainingUndo())
	}
}

func TestHistoryLimitEviction(t *testing.T) {
	e := NewEngine(WithHistoryLimit(3), WithoutTypingMerge())
	for i := 0; i < 5; i++ {
		e.Record(Insert(i, "x"), sel(0, uint32(i)), sel(0, uint32(i+1)))
	}
	if e.RemainingUndo() != 3 {
		t.Fatalf("RemainingUndo = %d, want 3", e.RemainingUndo())
	}
	// The oldest two groups (offsets 0 and 1) were evicted.
	g, _ := e.Undo()
	if g.Ops[0].Offset != 4 {
		t.Errorf("newest offset = %d, want 4", g.Ops[0].Offset)
	}
	e.Undo()
	g, _ = e.Undo()
	if g.Ops[0].Offset != 2 {
		t.Errorf("oldest surviving offset = %d, want 2", g.Ops[0].Offset)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	e := NewEngine(WithoutTypingMerge())
	e.Record(Insert(0, "hello"), sel(0, 0), sel(0, 5))

	g, ok := e.Undo()
	if !ok {
		t.Fatal("Undo = false")
	}
	rg, ok := e.Redo()
	if !ok {
		t.Fatal("Redo = false")
	}
	if len(rg.Ops) != len(g.Ops) || rg.Ops[0] != g.Ops[0] {
		t.Errorf("redo group differs: %+v vs %+v", rg, g)
	}
	if e.RemainingUndo() != 1 || e.RemainingRedo() != 0 {
		t.Errorf("stacks = %d/%d", e.RemainingUndo(), e.RemainingRedo())
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		op   Op
		want Kind
	}{
		{Insert(3, "x"), OpDelete},
		{Delete(3, "x"), OpInsert},
		{StyleAdd(textpos.NewByteRange(0, 4), 7), OpStyleRemove},
		{StyleRemove(textpos.NewByteRange(0, 4), 7), OpStyleAdd},
	}
	for _, tt := range tests {
		inv := tt.op.Invert()
		if inv.Kind != tt.want {
			t.Errorf("Invert(%v).Kind = %v, want %v", tt.op.Kind, inv.Kind, tt.want)
		}
		if back := inv.Invert(); back != tt.op {
			t.Errorf("double invert = %+v, want %+v", back, tt.op)
		}
	}
}
