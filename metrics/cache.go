package metrics

import (
	"fmt"

	"github.com/dshills/textcore/glyph"
	"github.com/dshills/textcore/store"
	"github.com/dshills/textcore/textpos"
)

// ShapeFunc produces a glyph iterator for one logical line under the
// given wrap configuration. The owning widget supplies it; the cache
// never holds a reference into the store.
type ShapeFunc func(line int, mode glyph.WrapMode, viewport int) (*glyph.Iter, error)

// Stats counts cache traffic.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

// LineMetrics is the memoized measurement of one line.
type LineMetrics struct {
	// Width is the widest screen row of the line under the current
	// wrap configuration; without wrapping it is the full line width.
	Width int

	// Segments are the byte ranges of the line's wrap rows, in order.
	// Concatenated they cover the line exactly, including its break.
	Segments []textpos.ByteRange
}

type entry struct {
	mode     glyph.WrapMode
	viewport int
	m        LineMetrics
}

// Cache memoizes line metrics. The zero value is not usable; create it
// with NewCache.
type Cache struct {
	shape    ShapeFunc
	mode     glyph.WrapMode
	viewport int

	lines map[int]entry
	stats Stats
}

// NewCache creates an empty cache computing entries with shape.
func NewCache(shape ShapeFunc) *Cache {
	return &Cache{shape: shape, lines: make(map[int]entry)}
}

// SetConfig sets the wrap configuration. Cached entries computed under
// a different configuration become stale and are recomputed on next
// access; they are not dropped eagerly because a resize often bounces
// back.
func (c *Cache) SetConfig(mode glyph.WrapMode, viewport int) {
	c.mode = mode
	c.viewport = viewport
}

// Line returns the metrics for a line, computing them if the cached
// entry is missing or stale.
func (c *Cache) Line(line int) (LineMetrics, error) {
	if e, ok := c.lines[line]; ok && e.mode == c.mode && e.viewport == c.viewport {
		c.stats.Hits++
		return e.m, nil
	}
	c.stats.Misses++
	m, err := c.compute(line)
	if err != nil {
		return LineMetrics{}, err
	}
	c.lines[line] = entry{mode: c.mode, viewport: c.viewport, m: m}
	return m, nil
}

// LineWidth returns the line's screen width under the current
// configuration.
func (c *Cache) LineWidth(line int) (int, error) {
	m, err := c.Line(line)
	if err != nil {
		return 0, err
	}
	return m.Width, nil
}

// WrapSegments returns the byte ranges of the line's wrap rows.
func (c *Cache) WrapSegments(line int) ([]textpos.ByteRange, error) {
	m, err := c.Line(line)
	if err != nil {
		return nil, err
	}
	return m.Segments, nil
}

func (c *Cache) compute(line int) (LineMetrics, error) {
	it, err := c.shape(line, c.mode, c.viewport)
	if err != nil {
		return LineMetrics{}, fmt.Errorf("metrics line %d: %w", line, err)
	}

	var m LineMetrics
	segStart := textpos.ByteOffset(-1)
	rowWidth := 0
	var segEnd textpos.ByteOffset
	for {
		gl, ok := it.Next()
		if !ok {
			break
		}
		if segStart < 0 {
			segStart = gl.Bytes.Start
		}
		segEnd = gl.Bytes.End
		rowWidth = gl.Col + gl.Width
		if gl.LineBreak {
			m.Segments = append(m.Segments, textpos.NewByteRange(segStart, segEnd))
			if rowWidth > m.Width {
				m.Width = rowWidth
			}
			segStart = -1
			rowWidth = 0
		}
	}
	if segStart >= 0 {
		m.Segments = append(m.Segments, textpos.NewByteRange(segStart, segEnd))
		if rowWidth > m.Width {
			m.Width = rowWidth
		}
	}
	return m, nil
}

// Invalidate drops the cached entries for lines [from, to].
func (c *Cache) Invalidate(from, to int) {
	c.stats.Invalidations++
	for line := from; line <= to; line++ {
		delete(c.lines, line)
	}
}

// InvalidateFrom drops every cached entry at or after a line. Used when
// an edit changed the line count and every later line index moved.
func (c *Cache) InvalidateFrom(from int) {
	c.stats.Invalidations++
	for line := range c.lines {
		if line >= from {
			delete(c.lines, line)
		}
	}
}

// InvalidateAll drops every entry. Semantically safe at any time; the
// cache is never a source of truth.
func (c *Cache) InvalidateAll() {
	c.stats.Invalidations++
	clear(c.lines)
}

// Apply invalidates the minimal line range for one edit: exactly the
// edited line when no breaks were added or removed, otherwise from the
// edited line through end of document, since all later indices shifted.
// Cached segments hold absolute byte ranges, so entries after a
// no-break edit are shifted by the byte delta instead of dropped.
func (c *Cache) Apply(d store.EditDelta) {
	if d.ChangedLines() {
		c.InvalidateFrom(d.Line)
		return
	}
	c.Invalidate(d.Line, d.Line)
	delta := d.ByteDelta()
	if delta == 0 {
		return
	}
	for line, e := range c.lines {
		if line <= d.Line {
			continue
		}
		segs := make([]textpos.ByteRange, len(e.m.Segments))
		for i, r := range e.m.Segments {
			segs[i] = r.Shift(delta)
		}
		e.m.Segments = segs
		c.lines[line] = e
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.lines)
}

// Stats returns a copy of the traffic counters.
func (c *Cache) Stats() Stats {
	return c.stats
}
