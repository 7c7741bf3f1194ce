package undo

import (
	"strings"

	"github.com/dshills/textcore/grapheme"
	"github.com/dshills/textcore/textpos"
)

// DefaultHistoryLimit is the number of groups kept when no limit option
// is given.
const DefaultHistoryLimit = 1000

// Option configures an Engine.
type Option func(*Engine)

// WithHistoryLimit caps the number of undo groups kept. Exceeding the
// cap silently evicts the oldest group. A limit below 1 is treated as 1.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.limit = n
	}
}

// WithoutTypingMerge disables merging of consecutive single-cluster
// insertions into one group.
func WithoutTypingMerge() Option {
	return func(e *Engine) {
		e.noMerge = true
	}
}

// Engine keeps the undo and redo stacks. It is not safe for concurrent
// use; like the rest of the engine it is driven from one thread by the
// owning widget state.
type Engine struct {
	undo    []Group
	redo    []Group
	limit   int
	noMerge bool

	depth   int // open BeginGroup nesting
	current Group
}

// NewEngine creates an engine with the default history limit.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{limit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BeginGroup opens a group; every Record until the matching EndGroup
// joins it. Nested calls are collapsed into the outermost group. The
// selection is the state to restore when the group is undone.
func (e *Engine) BeginGroup(sel textpos.Selection) {
	if e.depth == 0 {
		e.current = Group{Before: sel}
	}
	e.depth++
}

// EndGroup closes the current group. A group that recorded nothing is
// discarded; otherwise it is pushed with the given selection as its
// redo-restore state.
func (e *Engine) EndGroup(sel textpos.Selection) {
	if e.depth == 0 {
		return
	}
	e.depth--
	if e.depth > 0 {
		return
	}
	g := e.current
	e.current = Group{}
	if g.IsEmpty() {
		return
	}
	g.After = sel
	e.push(g)
}

// Record adds one operation to the history. While a group is open the
// op joins it; otherwise it forms an implicit single-op group with the
// given selections. Recording clears the redo stack.
func (e *Engine) Record(op Op, before, after textpos.Selection) {
	e.redo = e.redo[:0]
	if e.depth > 0 {
		e.current.Ops = append(e.current.Ops, op)
		return
	}
	if e.tryMergeTyping(op, after) {
		return
	}
	e.push(Group{Ops: []Op{op}, Before: before, After: after})
}

// tryMergeTyping folds a single-cluster insertion directly after the
// previous one into the previous group, so typing a word undoes as one
// unit. Line breaks never merge.
func (e *Engine) tryMergeTyping(op Op, after textpos.Selection) bool {
	if e.noMerge || op.Kind != OpInsert || len(e.undo) == 0 {
		return false
	}
	if grapheme.Count(op.Text) != 1 || strings.ContainsAny(op.Text, "\r\n") {
		return false
	}
	last := &e.undo[len(e.undo)-1]
	n := len(last.Ops)
	if n == 0 {
		return false
	}
	prev := &last.Ops[n-1]
	if prev.Kind != OpInsert || strings.ContainsAny(prev.Text, "\r\n") {
		return false
	}
	if op.Offset != prev.Offset+len(prev.Text) {
		return false
	}
	prev.Text += op.Text
	last.After = after
	return true
}

func (e *Engine) push(g Group) {
	e.undo = append(e.undo, g)
	if len(e.undo) > e.limit {
		// Evict the oldest group without error.
		copy(e.undo, e.undo[1:])
		e.undo = e.undo[:len(e.undo)-1]
	}
}

// Undo pops the most recent group and moves it to the redo stack. The
// caller replays the group's ops inverted, in reverse order, then
// restores g.Before. ok is false when there is nothing to undo.
func (e *Engine) Undo() (g Group, ok bool) {
	if len(e.undo) == 0 {
		return Group{}, false
	}
	g = e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, g)
	return g, true
}

// Redo pops the most recently undone group back onto the undo stack.
// The caller replays the group's ops forward, then restores g.After.
// ok is false when there is nothing to redo.
func (e *Engine) Redo() (g Group, ok bool) {
	if len(e.redo) == 0 {
		return Group{}, false
	}
	g = e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, g)
	return g, true
}

// RemainingUndo returns the number of groups available to undo.
func (e *Engine) RemainingUndo() int {
	return len(e.undo)
}

// RemainingRedo returns the number of groups available to redo.
func (e *Engine) RemainingRedo() int {
	return len(e.redo)
}

// Grouping reports whether a group is currently open.
func (e *Engine) Grouping() bool {
	return e.depth > 0
}

// Clear drops all history, including any open group's recorded ops.
func (e *Engine) Clear() {
	e.undo = e.undo[:0]
	e.redo = e.redo[:0]
	e.depth = 0
	e.current = Group{}
}
