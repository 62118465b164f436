package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestHelp_New(t *testing.T) {
	m := New("dark")

	// Verify model is created with keys populated
	assert.NotEmpty(t, m.keymap.Up.Keys(), "expected Up keys to be set")
	assert.NotEmpty(t, m.keymap.Down.Keys(), "expected Down keys to be set")
	assert.NotEmpty(t, m.keymap.Close.Keys(), "expected Close keys to be set")
	assert.False(t, m.Visible(), "help starts hidden")
}

func TestHelp_New_DefaultStyle(t *testing.T) {
	m := New("")
	assert.Equal(t, "dark", m.style, "empty style falls back to dark")

	m = New("light")
	assert.Equal(t, "light", m.style)
}

func TestHelp_ShowHide(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)

	m.Show()
	assert.True(t, m.Visible())

	m.Hide()
	assert.False(t, m.Visible())
}

func TestHelp_SetSize(t *testing.T) {
	m := New("dark")

	m.SetSize(120, 40)
	assert.Equal(t, 120, m.width, "expected width to be 120")
	assert.Equal(t, 40, m.height, "expected height to be 40")

	m.SetSize(80, 24)
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 24, m.height)
}

func TestHelp_View_HiddenIsEmpty(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)

	assert.Empty(t, m.View(), "hidden help renders nothing")
}

func TestHelp_View_ContainsTitle(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)
	m.Show()

	view := m.View()
	assert.Contains(t, view, "ved help", "expected view to contain title")
}

func TestHelp_View_ContainsFooter(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)
	m.Show()

	view := m.View()
	assert.Contains(t, view, "j/k to scroll, ? or esc to close", "expected view to contain footer")
}

func TestHelp_View_ContainsDocument(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)
	m.Show()

	view := m.View()

	// The opening of the rendered document is visible without scrolling
	assert.Contains(t, view, "modal", "expected view to contain the intro")
	assert.Contains(t, view, "Normal mode", "expected view to contain the first section")
}

func TestHelp_View_VariousSizes(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"standard 80x24", 80, 24},
		{"large 120x40", 120, 40},
		{"narrow 60x20", 60, 20},
		{"wide 200x30", 200, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("dark")
			m.SetSize(tt.width, tt.height)
			m.Show()

			view := m.View()
			assert.Contains(t, view, "ved help", "expected title")
			assert.Contains(t, view, "j/k to scroll, ? or esc to close", "expected footer")
		})
	}
}

func TestHelp_View_Stability(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)
	m.Show()

	view1 := m.View()
	view2 := m.View()

	// Same model should produce identical output
	assert.Equal(t, view1, view2, "expected stable output from same model")
	assert.NotEmpty(t, view1, "expected non-empty view")
	assert.Greater(t, len(view1), 100, "expected substantial output")
}

func TestHelp_Update_CloseKeySendsCloseMsg(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)
	m.Show()

	m, cmd := m.Update(keyRunes('?'))

	assert.False(t, m.Visible(), "? closes the help view")
	require.NotNil(t, cmd, "expected a close command")
	assert.Equal(t, CloseMsg{}, cmd())
}

func TestHelp_Update_EscCloses(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)
	m.Show()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.Visible())
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{}, cmd())
}

func TestHelp_Update_ScrollKeys(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 10)
	m.Show()

	// The rendered document is far taller than seven content rows
	m, _ = m.Update(keyRunes('j'))
	assert.Equal(t, 1, m.viewport.YOffset, "j scrolls down one line")

	m, _ = m.Update(keyRunes('k'))
	assert.Equal(t, 0, m.viewport.YOffset, "k scrolls back up")
}

func TestHelp_Update_IgnoredWhenHidden(t *testing.T) {
	m := New("dark")
	m.SetSize(80, 24)

	m, cmd := m.Update(keyRunes('j'))

	assert.Nil(t, cmd, "hidden help swallows nothing")
	assert.False(t, m.Visible())
}

func TestHelp_RenderFallback_PlainMarkdown(t *testing.T) {
	// An unknown style breaks the glamour pipeline; the help view falls
	// back to the raw document wrapped to the width
	m := New("no-such-style")
	m.SetSize(80, 24)
	m.Show()

	view := m.View()
	assert.Contains(t, view, "# ved", "expected raw markdown in fallback")
	assert.Contains(t, view, "j/k to scroll, ? or esc to close", "footer still renders")
}
