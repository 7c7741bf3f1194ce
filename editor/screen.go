package editor

import (
	"fmt"

	"github.com/dshills/textcore/textpos"
)

// ScreenToByte maps a screen cell within a line's wrap rows back to a
// byte offset: the offset of the glyph covering the cell. A column past
// the end of a row maps to the offset just after the row's last glyph,
// which is where a click beyond the text places the cursor.
func (ed *Editor) ScreenToByte(line, row, col int) (ByteOffset, error) {
	it, err := ed.LineGlyphs(line)
	if err != nil {
		return 0, err
	}
	rowSeen := false
	end := ByteOffset(-1)
	for {
		gl, ok := it.Next()
		if !ok {
			break
		}
		if gl.Row != row {
			if rowSeen {
				break
			}
			continue
		}
		rowSeen = true
		if col >= gl.Col && col < gl.Col+gl.Width {
			return gl.Bytes.Start, nil
		}
		if gl.LineBreak {
			// Past the visible row end.
			return gl.Bytes.Start, nil
		}
		end = gl.Bytes.End
	}
	if !rowSeen {
		if row == 0 && end < 0 {
			// Empty line.
			r, err := ed.store.LineBytes(line)
			if err != nil {
				return 0, err
			}
			return r.Start, nil
		}
		return 0, fmt.Errorf("screen row %d of line %d: %w",
			row, line, textpos.ErrInvalidBoundary)
	}
	return end, nil
}

// ScreenToPosition maps a screen cell to a text position.
func (ed *Editor) ScreenToPosition(line, row, col int) (TextPosition, error) {
	off, err := ed.ScreenToByte(line, row, col)
	if err != nil {
		return TextPosition{}, err
	}
	return ed.store.ByteToPosition(off)
}

// ByteToScreen maps a byte offset to its screen cell under the current
// wrap configuration: the wrap row within the offset's line and the
// screen column. The one-past-line-end offset maps just after the last
// glyph.
func (ed *Editor) ByteToScreen(off ByteOffset) (line, row, col int, err error) {
	pos, err := ed.store.ByteToPosition(off)
	if err != nil {
		return 0, 0, 0, err
	}
	line = int(pos.Line)

	it, err := ed.LineGlyphs(line)
	if err != nil {
		return 0, 0, 0, err
	}
	for {
		gl, ok := it.Next()
		if !ok {
			return line, row, col, nil
		}
		if off < gl.Bytes.End || (gl.Bytes.IsEmpty() && off == gl.Bytes.Start) {
			return line, gl.Row, gl.Col, nil
		}
		row = gl.Row
		col = gl.Col + gl.Width
		if gl.LineBreak && gl.SoftBreak {
			// The offset continues on the next wrap row.
			row++
			col = 0
		}
	}
}
