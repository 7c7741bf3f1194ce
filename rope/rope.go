package rope

import "strings"

// Rope is an immutable rope. The zero value is an empty rope.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	chunks := splitIntoChunks(s)
	leaves := make([]*node, 0, len(chunks)/maxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += maxChunksPerLeaf {
		end := min(i+maxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeaf(chunks[i:end:end]))
	}
	return Rope{root: fromNodes(leaves)}
}

// Len returns the total byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.bytes()
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// LineCount returns the number of lines: newlines + 1.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Newlines + 1
}

// String returns the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in [start, end), clamped to the rope bounds.
func (r Rope) Slice(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at the given offset.
func (r Rope) ByteAt(off int) (byte, bool) {
	if r.root == nil || off < 0 || off >= r.Len() {
		return 0, false
	}
	data, start := r.root.chunkAt(off)
	return data[off-start], true
}

// Insert returns a new rope with text inserted at the byte offset.
func (r Rope) Insert(off int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(text)
	}
	if off <= 0 {
		return FromString(text).Concat(r)
	}
	if off >= r.Len() {
		return r.Concat(FromString(text))
	}
	left, right := r.Split(off)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a new rope without the bytes in [start, end).
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil || start >= end || start >= r.Len() {
		return r
	}
	if start < 0 {
		start = 0
	}
	if end >= r.Len() {
		if start == 0 {
			return New()
		}
		left, _ := r.Split(start)
		return left
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Split divides the rope at off into [0, off) and [off, Len()).
func (r Rope) Split(off int) (Rope, Rope) {
	if r.root == nil || off <= 0 {
		return New(), r
	}
	if off >= r.Len() {
		return r, New()
	}
	l, rr := r.root.split(off)
	return Rope{root: l}, Rope{root: rr}
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concatNodes(r.root, other.root)}
}

// LineStartOffset returns the byte offset where the 0-indexed line
// begins. Lines past the end report the rope length.
func (r Rope) LineStartOffset(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line > r.root.summary.Newlines {
		return r.Len()
	}
	return r.root.offsetOfNewline(line - 1)
}

// LineEndOffset returns the byte offset just past the last content byte
// of the line, excluding its newline.
func (r Rope) LineEndOffset(line int) int {
	if r.root == nil {
		return 0
	}
	if line >= r.root.summary.Newlines {
		return r.Len()
	}
	return r.root.offsetOfNewline(line) - 1
}

// LineText returns the text of a line without its newline.
func (r Rope) LineText(line int) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// LineOfOffset returns the 0-indexed line containing the byte offset.
// The one-past-end offset maps to the last line.
func (r Rope) LineOfOffset(off int) int {
	if r.root == nil || off <= 0 {
		return 0
	}
	if off > r.Len() {
		off = r.Len()
	}
	return r.root.newlinesBefore(off)
}

// Height returns the tree height, for balance checks in tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}
