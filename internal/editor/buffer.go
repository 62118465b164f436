package editor

import "slices"

// Buffer is the document: one mutable sequence of runes including embedded
// newline markers. Lines are never stored; they are derived on demand so
// they cannot drift from the content.
type Buffer struct {
	runes []rune
}

// NewBuffer creates a buffer holding the given text.
func NewBuffer(text string) *Buffer {
	return &Buffer{runes: []rune(text)}
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// String returns the full buffer content.
func (b *Buffer) String() string {
	return string(b.runes)
}

// InsertAt inserts r at the given offset. The caller guarantees
// 0 <= offset <= Len().
func (b *Buffer) InsertAt(offset int, r rune) {
	b.runes = slices.Insert(b.runes, offset, r)
}

// DeleteAt removes the rune at the given offset. The caller guarantees
// 0 <= offset < Len().
func (b *Buffer) DeleteAt(offset int) {
	b.runes = slices.Delete(b.runes, offset, offset+1)
}

// Lines splits the buffer into its logical lines. An empty buffer yields
// exactly one empty line; a trailing newline yields one extra addressable
// empty line after it. The returned slices alias the buffer and are only
// valid until the next mutation.
func (b *Buffer) Lines() [][]rune {
	lines := make([][]rune, 0, b.LineCount())
	start := 0
	for i, r := range b.runes {
		if r == '\n' {
			lines = append(lines, b.runes[start:i])
			start = i + 1
		}
	}
	return append(lines, b.runes[start:])
}

// Line returns the line at the given row. The second return is false when
// the row does not exist; callers treat that as an invariant violation for
// the current cursor row.
func (b *Buffer) Line(row int) ([]rune, bool) {
	if row < 0 {
		return nil, false
	}
	lines := b.Lines()
	if row >= len(lines) {
		return nil, false
	}
	return lines[row], true
}

// LineCount returns the number of logical lines. Always at least 1.
func (b *Buffer) LineCount() int {
	n := 1
	for _, r := range b.runes {
		if r == '\n' {
			n++
		}
	}
	return n
}
