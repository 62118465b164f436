package editor

import "fmt"

// Result reports the outcome of a cursor or buffer operation.
type Result int

const (
	// Applied means the operation changed cursor or buffer state.
	Applied Result = iota
	// Blocked means the operation was a recognized no-op at a buffer
	// boundary. Blocked is not an error and never aborts the input loop.
	Blocked
)

// Cursor tracks the edit position as a single linear offset: the number of
// runes strictly before the cursor. The offset is the only stored
// coordinate; row and column are always derived from it and the buffer, so
// they cannot desynchronize from the content.
type Cursor struct {
	offset int
}

// Offset returns the linear cursor position, in [0, buffer length].
func (c Cursor) Offset() int {
	return c.offset
}

// SetOffset places the cursor at the given offset, clamped to the valid
// range for the buffer. Used when restoring a remembered position against a
// file that may have changed since.
func (c *Cursor) SetOffset(offset int, b *Buffer) {
	c.offset = clamp(offset, 0, b.Len())
}

// Row returns the cursor row: the number of newlines strictly before the
// offset. The O(offset) scan is deliberate; lines are recomputed per query
// for interactive buffer sizes.
func (c Cursor) Row(b *Buffer) int {
	row := 0
	for _, r := range b.runes[:c.offset] {
		if r == '\n' {
			row++
		}
	}
	return row
}

// Col returns the cursor column within its row. Walking the lines in
// order, each consumes its length plus one for the newline; the first line
// whose cumulative end reaches the offset holds the cursor.
func (c Cursor) Col(b *Buffer) int {
	consumed := 0
	for _, line := range b.Lines() {
		end := consumed + len(line)
		if c.offset <= end {
			return c.offset - consumed
		}
		consumed = end + 1
	}
	panic(fmt.Sprintf("cursor offset %d outside buffer of %d runes", c.offset, b.Len()))
}

// MoveRight advances the cursor one rune. Blocked at the end of the buffer.
func (c *Cursor) MoveRight(b *Buffer) Result {
	if c.offset == b.Len() {
		return Blocked
	}
	c.offset++
	return Applied
}

// MoveLeft retreats the cursor one rune. Blocked at the start of the
// buffer. Crossing a newline lands at the end of the previous line.
func (c *Cursor) MoveLeft(b *Buffer) Result {
	if c.offset == 0 {
		return Blocked
	}
	c.offset--
	return Applied
}

// MoveDown moves the cursor to the line below, keeping the column when it
// exists there and clamping to that line's end otherwise. Blocked on the
// last row. When the target row reaches the bottom of the visible band the
// viewport scrolls down one line and the cursor stays visually pinned.
func (c *Cursor) MoveDown(b *Buffer, v *Viewport) Result {
	row := c.Row(b)
	if row+1 == b.LineCount() {
		return Blocked
	}
	col := c.Col(b)
	cur := c.mustLine(b, row)
	next := c.mustLine(b, row+1)

	c.offset += (len(cur) - col) + 1
	if len(next) < col+1 {
		c.offset += len(next)
	} else {
		c.offset += col
	}
	v.FollowDown(row + 1)
	return Applied
}

// MoveUp is the mirror of MoveDown: blocked on row 0, clamps to a shorter
// previous line, scrolls the viewport up one line when the target row
// reaches the top of the band.
func (c *Cursor) MoveUp(b *Buffer, v *Viewport) Result {
	row := c.Row(b)
	if row == 0 {
		return Blocked
	}
	col := c.Col(b)
	prev := c.mustLine(b, row-1)

	if len(prev) < col+1 {
		c.offset -= col + 1
	} else {
		c.offset -= len(prev) + 1
	}
	v.FollowUp(row - 1)
	return Applied
}

// MoveToNextLine advances the cursor to the start of the next line without
// preserving the column. Blocked on the last row. The down-scroll policy
// applies so the cursor cannot leave the visible band.
func (c *Cursor) MoveToNextLine(b *Buffer, v *Viewport) Result {
	row := c.Row(b)
	if row+1 == b.LineCount() {
		return Blocked
	}
	cur := c.mustLine(b, row)

	c.offset += (len(cur) - c.Col(b)) + 1
	v.FollowDown(row + 1)
	return Applied
}

// InsertRune inserts r at the cursor and advances past it. The caller has
// already classified r as insertable. Lines may grow past the viewport
// width; the renderer truncates for display only.
func (c *Cursor) InsertRune(b *Buffer, r rune) {
	b.InsertAt(c.offset, r)
	c.MoveRight(b)
}

// DeleteRune removes the rune at the cursor without moving it. Blocked when
// the buffer is empty or the cursor is at or past the final rune: deleting
// the last character is deliberately disallowed.
func (c *Cursor) DeleteRune(b *Buffer) Result {
	if b.Len() == 0 || c.offset >= b.Len()-1 {
		return Blocked
	}
	b.DeleteAt(c.offset)
	return Applied
}

// mustLine resolves a row the cursor arithmetic proved to exist. A failed
// lookup means the offset, the derived row, and the line index disagree;
// that is a defect, so it aborts rather than continue with divergent state.
func (c Cursor) mustLine(b *Buffer, row int) []rune {
	line, ok := b.Line(row)
	if !ok {
		panic(fmt.Sprintf("cursor row %d out of bounds (offset %d, %d lines)", row, c.offset, b.LineCount()))
	}
	return line
}
