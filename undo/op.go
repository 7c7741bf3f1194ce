package undo

import (
	"github.com/dshills/textcore/style"
	"github.com/dshills/textcore/textpos"
)

// Kind identifies what an operation did to the document.
type Kind int

const (
	// OpInsert placed Text at Offset.
	OpInsert Kind = iota
	// OpDelete removed Text from Offset.
	OpDelete
	// OpStyleAdd added the (Range, Tag) span to the style index.
	OpStyleAdd
	// OpStyleRemove removed the (Range, Tag) span from the style index.
	OpStyleRemove
)

// Op is one primitive, invertible operation. Text ops use Offset and
// Text; style ops use Range and Tag. Offsets and ranges are in the
// coordinates of the document as it was when the op applied.
type Op struct {
	Kind   Kind
	Offset textpos.ByteOffset
	Text   string
	Range  textpos.ByteRange
	Tag    style.Tag
}

// Insert builds an insert op.
func Insert(off textpos.ByteOffset, text string) Op {
	return Op{Kind: OpInsert, Offset: off, Text: text}
}

// Delete builds a delete op recording the removed text.
func Delete(off textpos.ByteOffset, removed string) Op {
	return Op{Kind: OpDelete, Offset: off, Text: removed}
}

// StyleAdd builds a style-add op.
func StyleAdd(r textpos.ByteRange, tag style.Tag) Op {
	return Op{Kind: OpStyleAdd, Range: r, Tag: tag}
}

// StyleRemove builds a style-remove op.
func StyleRemove(r textpos.ByteRange, tag style.Tag) Op {
	return Op{Kind: OpStyleRemove, Range: r, Tag: tag}
}

// Invert returns the op that undoes this one.
func (o Op) Invert() Op {
	switch o.Kind {
	case OpInsert:
		o.Kind = OpDelete
	case OpDelete:
		o.Kind = OpInsert
	case OpStyleAdd:
		o.Kind = OpStyleRemove
	case OpStyleRemove:
		o.Kind = OpStyleAdd
	}
	return o
}

// Group is the unit of one undo or redo invocation: the primitive ops
// in application order plus the selections bracketing them.
type Group struct {
	Ops    []Op
	Before textpos.Selection
	After  textpos.Selection
}

// IsEmpty reports whether the group carries no operations.
func (g Group) IsEmpty() bool {
	return len(g.Ops) == 0
}
