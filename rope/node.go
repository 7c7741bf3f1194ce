package rope

import "strings"

// Tree fan-out limits.
const (
	maxChildren      = 8
	maxChunksPerLeaf = 4
)

// node is one node of the rope tree. Leaves (height 0) hold chunks;
// internal nodes hold children plus their cached summaries.
type node struct {
	height   int
	summary  Summary
	children []*node
	chunks   []chunk
}

func newLeaf(chunks []chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf(nil)
	}
	n := &node{height: children[0].height + 1, children: children}
	for _, c := range children {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) bytes() int {
	return n.summary.Bytes
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, c := range n.children {
		c.appendTo(sb)
	}
}

// appendRange writes the bytes of [start, end) into sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.isLeaf() {
		off := 0
		for _, c := range n.chunks {
			clen := c.len()
			if off+clen > start && off < end {
				lo, hi := 0, clen
				if start > off {
					lo = start - off
				}
				if end < off+clen {
					hi = end - off
				}
				sb.WriteString(c.data[lo:hi])
			}
			off += clen
			if off >= end {
				break
			}
		}
		return
	}
	off := 0
	for _, c := range n.children {
		clen := c.bytes()
		if off+clen > start && off < end {
			lo, hi := 0, clen
			if start > off {
				lo = start - off
			}
			if end < off+clen {
				hi = end - off
			}
			c.appendRange(sb, lo, hi)
		}
		off += clen
		if off >= end {
			break
		}
	}
}

// split divides the subtree at a byte offset into two balanced trees.
func (n *node) split(off int) (*node, *node) {
	if off <= 0 {
		return newLeaf(nil), n
	}
	if off >= n.bytes() {
		return n, newLeaf(nil)
	}

	if n.isLeaf() {
		var left, right []chunk
		pos := 0
		for _, c := range n.chunks {
			switch {
			case pos+c.len() <= off:
				left = append(left, c)
			case pos >= off:
				right = append(right, c)
			default:
				l, r := c.split(off - pos)
				if l.len() > 0 {
					left = append(left, l)
				}
				if r.len() > 0 {
					right = append(right, r)
				}
			}
			pos += c.len()
		}
		return newLeaf(left), newLeaf(right)
	}

	pos := 0
	for i, c := range n.children {
		clen := c.bytes()
		if off < pos+clen {
			cl, cr := c.split(off - pos)
			l := concatNodes(overSiblings(n.children[:i]), cl)
			r := concatNodes(cr, overSiblings(n.children[i+1:]))
			return l, r
		}
		pos += clen
	}
	return n, newLeaf(nil)
}

// overSiblings builds a node over equal-height siblings taken in order
// from one parent, so len(children) <= maxChildren.
func overSiblings(children []*node) *node {
	switch len(children) {
	case 0:
		return newLeaf(nil)
	case 1:
		return children[0]
	}
	out := make([]*node, len(children))
	copy(out, children)
	return newInternal(out)
}

// fromNodes builds a tree over equal-height nodes in document order.
func fromNodes(nodes []*node) *node {
	switch len(nodes) {
	case 0:
		return newLeaf(nil)
	case 1:
		return nodes[0]
	}
	for len(nodes) > maxChildren {
		var parents []*node
		for i := 0; i < len(nodes); i += maxChildren {
			end := min(i+maxChildren, len(nodes))
			parents = append(parents, newInternal(nodes[i:end:end]))
		}
		nodes = parents
	}
	return newInternal(nodes)
}

// concatNodes joins two trees. The result's height is that of the
// taller input, or one more when the join overflows at that level:
// the shorter tree is merged down the taller tree's spine and child
// lists are combined, splitting in two when they exceed the fan-out.
func concatNodes(left, right *node) *node {
	if left == nil || left.bytes() == 0 {
		if right == nil {
			return newLeaf(nil)
		}
		return right
	}
	if right == nil || right.bytes() == 0 {
		return left
	}

	switch {
	case left.height == right.height:
		if left.isLeaf() {
			return mergeLeaves(left, right)
		}
		return mergeChildren(left.children, right.children)
	case left.height > right.height:
		last := left.children[len(left.children)-1]
		merged := concatNodes(last, right)
		if merged.height < left.height {
			return withLast(left, merged)
		}
		return mergeChildren(left.children[:len(left.children)-1], merged.children)
	default:
		first := right.children[0]
		merged := concatNodes(left, first)
		if merged.height < right.height {
			return withFirst(right, merged)
		}
		return mergeChildren(merged.children, right.children[1:])
	}
}

// mergeChildren combines two equal-height child lists into one node,
// or a parent of two half-full nodes when the fan-out overflows.
func mergeChildren(a, b []*node) *node {
	all := make([]*node, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	if len(all) <= maxChildren {
		return newInternal(all)
	}
	half := (len(all) + 1) / 2
	return newInternal([]*node{
		newInternal(all[:half:half]),
		newInternal(all[half:]),
	})
}

// mergeLeaves joins two leaves, coalescing adjacent small chunks so
// chunk count tracks text size rather than edit count.
func mergeLeaves(l, r *node) *node {
	chunks := make([]chunk, 0, len(l.chunks)+len(r.chunks))
	chunks = append(chunks, l.chunks...)
	chunks = append(chunks, r.chunks...)
	chunks = packChunks(chunks)
	if len(chunks) <= maxChunksPerLeaf {
		return newLeaf(chunks)
	}
	half := (len(chunks) + 1) / 2
	return newInternal([]*node{
		newLeaf(chunks[:half:half]),
		newLeaf(chunks[half:]),
	})
}

func packChunks(chunks []chunk) []chunk {
	out := make([]chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.len() == 0 {
			continue
		}
		if n := len(out) - 1; n >= 0 && out[n].len()+c.len() <= maxChunkSize {
			out[n] = newChunk(out[n].data + c.data)
			continue
		}
		out = append(out, c)
	}
	return out
}

// withLast returns a copy of n with its last child replaced.
func withLast(n *node, last *node) *node {
	children := make([]*node, len(n.children))
	copy(children, n.children)
	children[len(children)-1] = last
	return newInternal(children)
}

// withFirst returns a copy of n with its first child replaced.
func withFirst(n *node, first *node) *node {
	children := make([]*node, len(n.children))
	copy(children, n.children)
	children[0] = first
	return newInternal(children)
}

// chunkAt returns the chunk containing byte offset off together with
// the chunk's absolute start offset.
func (n *node) chunkAt(off int) (string, int) {
	pos := 0
	for !n.isLeaf() {
		for i, c := range n.children {
			if pos+c.bytes() > off || i == len(n.children)-1 {
				n = c
				break
			}
			pos += c.bytes()
		}
	}
	for i, c := range n.chunks {
		if pos+c.len() > off || i == len(n.chunks)-1 {
			return c.data, pos
		}
		pos += c.len()
	}
	return "", pos
}

// newlinesBefore counts '\n' bytes in [0, off).
func (n *node) newlinesBefore(off int) int {
	if off <= 0 {
		return 0
	}
	if off >= n.bytes() {
		return n.summary.Newlines
	}
	if n.isLeaf() {
		count := 0
		pos := 0
		for _, c := range n.chunks {
			if pos >= off {
				break
			}
			end := min(c.len(), off-pos)
			count += strings.Count(c.data[:end], "\n")
			pos += c.len()
		}
		return count
	}
	count := 0
	pos := 0
	for _, c := range n.children {
		if pos >= off {
			break
		}
		if pos+c.bytes() <= off {
			count += c.summary.Newlines
		} else {
			count += c.newlinesBefore(off - pos)
		}
		pos += c.bytes()
	}
	return count
}

// offsetOfNewline returns the byte offset just after the idx-th newline
// (0-indexed). idx must be < summary.Newlines.
func (n *node) offsetOfNewline(idx int) int {
	if n.isLeaf() {
		pos := 0
		for _, c := range n.chunks {
			if idx < c.summary.Newlines {
				rest := c.data
				for {
					nl := strings.IndexByte(rest, '\n')
					if idx == 0 {
						return pos + len(c.data) - len(rest) + nl + 1
					}
					idx--
					rest = rest[nl+1:]
				}
			}
			idx -= c.summary.Newlines
			pos += c.len()
		}
		return pos
	}
	pos := 0
	for _, c := range n.children {
		if idx < c.summary.Newlines {
			return pos + c.offsetOfNewline(idx)
		}
		idx -= c.summary.Newlines
		pos += c.bytes()
	}
	return pos
}
