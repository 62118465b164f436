package editor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

// sizedModel returns a model with the given content and viewport
// dimensions, as if the first WindowSizeMsg had arrived.
func sizedModel(content string, width, height int) Model {
	m := New(Config{Content: content})
	m.viewport.Width = width
	m.viewport.Height = height
	m.sized = true
	return m
}

// ============================================================================
// Frame shape
// ============================================================================

func TestView_EmptyBeforeSizing(t *testing.T) {
	m := New(Config{Content: "hello"})

	require.Empty(t, m.View(), "no frame before the terminal size is known")
}

func TestView_RowCount(t *testing.T) {
	m := sizedModel("hello", 200, 24)
	view := m.View()

	lines := strings.Split(view, "\n")
	require.Len(t, lines, 24, "Height-1 content rows plus one status row")
}

func TestView_FillerRowsPastBufferEnd(t *testing.T) {
	m := sizedModel("hello", 200, 5)
	view := m.View()

	// One content line, three filler rows, one status row
	require.Equal(t, 3, strings.Count(view, "~"))
}

func TestView_ScrolledViewportStartsAtTopLine(t *testing.T) {
	m := sizedModel("aaa\nbbb\nccc\nddd", 200, 3)
	m.viewport.TopLine = 2
	m.cursor.SetOffset(12, m.buffer) // row 3, col 0

	view := m.View()

	require.NotContains(t, view, "aaa", "rows above TopLine stay hidden")
	require.NotContains(t, view, "bbb")
	require.Contains(t, view, "ccc")
	require.Contains(t, view, cursorOn+"d"+cursorOff+"dd")
}

// ============================================================================
// Cursor cell
// ============================================================================

func TestView_CursorAtStart(t *testing.T) {
	m := sizedModel("hello", 200, 24)
	view := m.View()

	require.Contains(t, view, cursorOn+"h"+cursorOff+"ello")
}

func TestView_CursorInMiddle(t *testing.T) {
	m := sizedModel("hello", 200, 24)
	m.cursor.SetOffset(2, m.buffer)
	view := m.View()

	require.Contains(t, view, "he"+cursorOn+"l"+cursorOff+"lo")
}

func TestView_CursorAtEndOfLine(t *testing.T) {
	m := sizedModel("hello", 200, 24)
	m.cursor.SetOffset(5, m.buffer)
	view := m.View()

	// Cursor rests on a styled space after the last character
	require.Contains(t, view, "hello"+cursorOn+" "+cursorOff)
}

func TestView_CursorOnEmptyBuffer(t *testing.T) {
	m := sizedModel("", 200, 24)
	view := m.View()

	require.Contains(t, view, cursorOn+" "+cursorOff)
}

func TestView_CursorOnEmptyMiddleLine(t *testing.T) {
	m := sizedModel("aa\n\nbb", 200, 24)
	m.cursor.SetOffset(3, m.buffer) // the empty middle line
	view := m.View()

	require.Contains(t, view, cursorOn+" "+cursorOff)
}

func TestView_CursorOnSecondLine(t *testing.T) {
	m := sizedModel("ab\ncd", 200, 24)
	m.cursor.SetOffset(4, m.buffer) // row 1, col 1
	view := m.View()

	require.Contains(t, view, "c"+cursorOn+"d"+cursorOff)
	require.Contains(t, view, "ab", "non-cursor rows render plain")
}

func TestView_InsertModeUnderlineCursor(t *testing.T) {
	m := sizedModel("hello", 200, 24)
	m.mode = ModeInsert
	view := m.View()

	require.Contains(t, view, insertCursorOn+"h"+insertCursorOff+"ello")
	require.NotContains(t, view, cursorOn+"h"+cursorOff)
}

func TestView_CursorOnWideCluster(t *testing.T) {
	m := sizedModel("a日b", 200, 24)
	m.cursor.SetOffset(1, m.buffer)
	view := m.View()

	require.Contains(t, view, "a"+cursorOn+"日"+cursorOff+"b")
}

// ============================================================================
// Display truncation
// ============================================================================

func TestView_LongLineTruncated(t *testing.T) {
	m := sizedModel("abcdef\nxy", 4, 24)
	m.cursor.SetOffset(8, m.buffer) // keep the cursor off the long line
	view := m.View()

	require.Contains(t, view, "abcd")
	require.NotContains(t, view, "abcde")
}

func TestView_WideRuneNeverSplitAtEdge(t *testing.T) {
	m := sizedModel("ab日cd\nxy", 4, 24)
	m.cursor.SetOffset(7, m.buffer)
	view := m.View()

	require.Contains(t, view, "ab日")
	require.NotContains(t, view, "ab日c", "the rune after the edge is dropped whole")
}

func TestView_CursorPastTruncationEdgeIsHidden(t *testing.T) {
	m := sizedModel("abcdef", 4, 24)
	m.cursor.SetOffset(5, m.buffer)
	view := m.View()

	require.Contains(t, view, "abcd")
	require.NotContains(t, view, cursorOn, "cursor cell beyond the edge is not drawn")
}

func TestView_CursorOnLastVisibleCell(t *testing.T) {
	m := sizedModel("abcdef", 4, 24)
	m.cursor.SetOffset(3, m.buffer)
	view := m.View()

	require.Contains(t, view, "abc"+cursorOn+"d"+cursorOff)
}

func TestView_NoCursorCellWhenLineFillsWidth(t *testing.T) {
	m := sizedModel("abcd", 4, 24)
	m.cursor.SetOffset(4, m.buffer)
	view := m.View()

	// End-of-line cursor needs a free cell; a full-width line has none
	require.NotContains(t, view, cursorOn)
}

// ============================================================================
// Status row
// ============================================================================

func TestView_StatusRowFields(t *testing.T) {
	m := sizedModel("hello\nworld", 200, 24)
	m.cursor.SetOffset(8, m.buffer) // row 1, col 2

	view := m.View()
	status := lastLine(view)

	require.Contains(t, status, "-- NORMAL --")
	require.Contains(t, status, "Cursor Index: 8")
	require.Contains(t, status, "Row Index: 1")
	require.Contains(t, status, "Col Index: 2")
	require.Contains(t, status, "Row Length: 5")
	require.Contains(t, status, "Top Line: 0")
	require.Contains(t, status, "Width: 200")
	require.Contains(t, status, "Height: 24")
}

func TestView_StatusRowInsertMode(t *testing.T) {
	m := sizedModel("hello", 200, 24)
	m.mode = ModeInsert

	require.Contains(t, lastLine(m.View()), "-- INSERT --")
}

func TestView_StatusRowEmptyBuffer(t *testing.T) {
	m := sizedModel("", 200, 24)

	status := lastLine(m.View())
	require.Contains(t, status, "Cursor Index: 0")
	require.Contains(t, status, "Row Length: 0")
}

func TestView_StatusRowShowsNotice(t *testing.T) {
	m := sizedModel("hello", 200, 24)
	m.notice = "can't move further"

	require.Contains(t, lastLine(m.View()), "can't move further")
}

func TestView_StatusRowTracksTopLine(t *testing.T) {
	m := sizedModel("a\nb\nc\nd\ne", 200, 3)
	m.viewport.TopLine = 3
	m.cursor.SetOffset(6, m.buffer) // row 3

	require.Contains(t, lastLine(m.View()), "Top Line: 3")
}

func TestView_StatusRowTruncatedToWidth(t *testing.T) {
	m := sizedModel("hi", 20, 24)

	status := lastLine(m.View())
	require.Contains(t, status, "-- NORMAL --")
	require.NotContains(t, status, "Height:", "fields past the terminal edge are cut")
}

func lastLine(view string) string {
	lines := strings.Split(view, "\n")
	return lines[len(lines)-1]
}
