package style

import (
	"fmt"
	"sort"

	"github.com/dshills/textcore/store"
	"github.com/dshills/textcore/textpos"
)

// Tag is an opaque style identifier chosen by the caller. The index
// never interprets it.
type Tag int

// Span is a tagged byte range. Spans may overlap; priority between
// overlapping spans is the caller's business.
type Span struct {
	Range textpos.ByteRange
	Tag   Tag
}

// Index is an interval index over style spans, ordered by range start.
// Each slot carries the maximum range end seen up to that slot, which
// turns overlap queries into a binary search plus a bounded backward
// scan. The zero value is ready to use.
type Index struct {
	spans  []Span
	maxEnd []textpos.ByteOffset
}

// NewIndex creates an empty style index.
func NewIndex() *Index {
	return &Index{}
}

// Len returns the number of spans.
func (x *Index) Len() int {
	return len(x.spans)
}

// Clear removes every span.
func (x *Index) Clear() {
	x.spans = x.spans[:0]
	x.maxEnd = x.maxEnd[:0]
}

// Spans returns a copy of every span in start order, or nil when the
// index is empty.
func (x *Index) Spans() []Span {
	if len(x.spans) == 0 {
		return nil
	}
	out := make([]Span, len(x.spans))
	copy(out, x.spans)
	return out
}

// Add inserts a span. Empty or inverted ranges are rejected.
func (x *Index) Add(r textpos.ByteRange, tag Tag) error {
	if !r.IsValid() || r.IsEmpty() {
		return fmt.Errorf("style span %s: %w", r, textpos.ErrInvalidRange)
	}
	i := sort.Search(len(x.spans), func(i int) bool {
		s := x.spans[i]
		if s.Range.Start != r.Start {
			return s.Range.Start > r.Start
		}
		return s.Range.End >= r.End
	})
	x.spans = append(x.spans, Span{})
	copy(x.spans[i+1:], x.spans[i:])
	x.spans[i] = Span{Range: r, Tag: tag}
	x.rebuildMaxEnd(i)
	return nil
}

// Remove deletes the first span exactly matching the range and tag.
// Removing a span that is not present reports false.
func (x *Index) Remove(r textpos.ByteRange, tag Tag) bool {
	i := sort.Search(len(x.spans), func(i int) bool {
		return x.spans[i].Range.Start >= r.Start
	})
	for ; i < len(x.spans) && x.spans[i].Range.Start == r.Start; i++ {
		if x.spans[i].Range == r && x.spans[i].Tag == tag {
			x.spans = append(x.spans[:i], x.spans[i+1:]...)
			x.maxEnd = x.maxEnd[:len(x.spans)]
			x.rebuildMaxEnd(i)
			return true
		}
	}
	return false
}

// StylesIn returns every span overlapping the byte range, in start
// order. Touching spans (sharing only an endpoint) do not overlap.
func (x *Index) StylesIn(r textpos.ByteRange) []Span {
	var out []Span
	x.visit(r, func(s Span) {
		out = append(out, s)
	})
	return out
}

// StylesAt returns the tags of every span containing the byte offset.
func (x *Index) StylesAt(off textpos.ByteOffset) []Tag {
	var out []Tag
	x.visit(textpos.NewByteRange(off, off+1), func(s Span) {
		out = append(out, s.Tag)
	})
	return out
}

// visit calls fn for each span overlapping r, in start order. The
// search runs right-to-left from the last span starting before r.End,
// pruning on the prefix maximum end; it touches O(log n + k) slots for
// non-degenerate span sets.
func (x *Index) visit(r textpos.ByteRange, fn func(Span)) {
	hi := sort.Search(len(x.spans), func(i int) bool {
		return x.spans[i].Range.Start >= r.End
	})
	lo := hi
	for lo > 0 && x.maxEnd[lo-1] > r.Start {
		lo--
	}
	for i := lo; i < hi; i++ {
		if x.spans[i].Range.Overlaps(r) {
			fn(x.spans[i])
		}
	}
}

// Apply adjusts every span for one applied edit. Insertion shifts each
// boundary at or after the edit point by the inserted length; deletion
// collapses boundaries inside the removed range to its start, shifts
// later boundaries back, and drops spans that become empty. Only spans
// at or after the edit point are touched.
func (x *Index) Apply(d store.EditDelta) {
	if d.RemovedLen > 0 {
		x.shrink(d.RemovedRange())
	}
	if d.InsertedLen > 0 {
		x.expand(d.InsertedRange())
	}
}

func (x *Index) expand(ins textpos.ByteRange) {
	// maxEnd is monotone, so this finds the first slot from which any
	// span can reach the insertion point. Shifting is a no-op for the
	// boundaries before it.
	i := sort.Search(len(x.maxEnd), func(i int) bool {
		return x.maxEnd[i] >= ins.Start
	})
	for j := i; j < len(x.spans); j++ {
		r := &x.spans[j].Range
		r.Start = textpos.ExpandBy(ins, r.Start)
		r.End = textpos.ExpandBy(ins, r.End)
	}
	x.rebuildMaxEnd(i)
}

func (x *Index) shrink(rem textpos.ByteRange) {
	first := sort.Search(len(x.maxEnd), func(i int) bool {
		return x.maxEnd[i] > rem.Start
	})
	keep := first
	for i := first; i < len(x.spans); i++ {
		r := x.spans[i].Range
		r.Start = textpos.ShrinkBy(rem, r.Start)
		r.End = textpos.ShrinkBy(rem, r.End)
		if r.IsEmpty() {
			continue // fully contained in the deletion
		}
		x.spans[keep] = Span{Range: r, Tag: x.spans[i].Tag}
		keep++
	}
	x.spans = x.spans[:keep]
	x.maxEnd = x.maxEnd[:keep]
	x.rebuildMaxEnd(first)
}

// rebuildMaxEnd recomputes the prefix maximums from slot i on.
func (x *Index) rebuildMaxEnd(i int) {
	for len(x.maxEnd) < len(x.spans) {
		x.maxEnd = append(x.maxEnd, 0)
	}
	for ; i < len(x.spans); i++ {
		m := x.spans[i].Range.End
		if i > 0 && x.maxEnd[i-1] > m {
			m = x.maxEnd[i-1]
		}
		x.maxEnd[i] = m
	}
}
