package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"ved/internal/styles"
)

// Normal mode uses reverse video (bold highlight), Insert mode uses underline
const (
	cursorOn  = "\x1b[7m"  // reverse video on (bold, high contrast)
	cursorOff = "\x1b[27m" // reverse video off (not full reset)

	insertCursorOn  = "\x1b[4m"  // underline on
	insertCursorOff = "\x1b[24m" // underline off
)

// renderFrame renders one full screen: Height-1 content rows starting at
// the viewport's top line, then the status row. The frame is rebuilt from
// scratch each call and returned as a single string; rendering reads state
// but never changes it.
func (m Model) renderFrame() string {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		// No terminal dimensions yet (the first WindowSizeMsg has not arrived)
		return ""
	}

	cursorRow := m.cursor.Row(m.buffer)
	cursorCol := m.cursor.Col(m.buffer)

	rows := make([]string, 0, m.viewport.Height)
	for i := 0; i < m.viewport.Height-1; i++ {
		row := m.viewport.TopLine + i

		line, ok := m.buffer.Line(row)
		if !ok {
			if row == cursorRow {
				panic(fmt.Sprintf("cursor row %d was not in bounds of the buffer (offset %d, %d lines)",
					row, m.cursor.Offset(), m.buffer.LineCount()))
			}
			// Rows past the end of the buffer render as a filler marker
			rows = append(rows, styles.FillerStyle.Render("~"))
			continue
		}

		if row == cursorRow {
			rows = append(rows, m.renderCursorLine(string(line), cursorCol))
		} else {
			rows = append(rows, TruncateToDisplayWidth(string(line), m.viewport.Width))
		}
	}

	rows = append(rows, m.renderStatusRow(cursorRow, cursorCol))

	return strings.Join(rows, "\n")
}

// renderCursorLine renders the line under the cursor with the cursor cell
// styled in place. col is a rune index; the walk tracks rune positions per
// grapheme cluster so a cluster built from several runes is highlighted
// whole. A cursor past the truncation edge is simply not visible (there is
// no horizontal scrolling); the status row still reports its column.
func (m Model) renderCursorLine(line string, col int) string {
	on, off := cursorOn, cursorOff
	if m.mode == ModeInsert {
		on, off = insertCursorOn, insertCursorOff
	}

	// Empty line: the cursor is the only cell
	if line == "" {
		return on + " " + off
	}

	var result strings.Builder
	width := 0
	runePos := 0
	cursorDrawn := false
	truncated := false

	iter := NewGraphemeIterator(line)
	for iter.Next() {
		cluster := iter.Cluster()
		clusterWidth := GraphemeDisplayWidth(cluster)
		if width+clusterWidth > m.viewport.Width {
			truncated = true
			break
		}

		clusterRunes := len([]rune(cluster))
		if !cursorDrawn && runePos <= col && col < runePos+clusterRunes {
			result.WriteString(on)
			result.WriteString(cluster)
			result.WriteString(off)
			cursorDrawn = true
		} else {
			result.WriteString(cluster)
		}
		width += clusterWidth
		runePos += clusterRunes
	}

	// Cursor at end of line: a styled space after the last character, when
	// the viewport has a cell left for it
	if !cursorDrawn && !truncated && col >= runePos && width < m.viewport.Width {
		result.WriteString(on + " " + off)
	}

	return result.String()
}

// renderStatusRow renders the bottom row: the mode segment and the cursor,
// line and viewport fields, with any transient notice appended. The styled
// result is truncated to the terminal width with ANSI awareness so escape
// sequences never split.
func (m Model) renderStatusRow(row, col int) string {
	rowLen := len(m.cursor.mustLine(m.buffer, row))

	mode := styles.StatusModeStyle.Render(fmt.Sprintf("-- %s --", m.mode))
	fields := styles.StatusBarStyle.Render(fmt.Sprintf(
		" | Cursor Index: %d | Row Index: %d | Col Index: %d | Row Length: %d | Top Line: %d | Width: %d | Height: %d",
		m.cursor.Offset(), row, col, rowLen,
		m.viewport.TopLine, m.viewport.Width, m.viewport.Height,
	))

	status := mode + fields
	if m.notice != "" {
		status += " " + styles.NoticeStyle.Render(m.notice)
	}

	return ansi.Truncate(status, m.viewport.Width, "")
}
