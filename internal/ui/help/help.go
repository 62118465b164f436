// Package help provides the scrollable help screen opened with '?' from
// normal mode.
package help

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"ved/internal/cache"
	"ved/internal/keys"
	"ved/internal/log"
	"ved/internal/styles"
)

//go:embed help.md
var helpMarkdown string

// renderTTL bounds how long a rendered document is kept per width.
const renderTTL = 10 * time.Minute

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// CloseMsg is sent when the help view should be closed.
type CloseMsg struct{}

// renderInput carries the parameters a render depends on.
type renderInput struct {
	width int
	style string
}

// Model is the help view component state.
type Model struct {
	visible  bool
	style    string
	width    int
	height   int
	keymap   keys.HelpKeyMap
	viewport viewport.Model
	renders  *cache.ReadThrough[string, string, renderInput]
}

// New creates a help view. style selects the markdown rendering style,
// "dark" or "light"; empty defaults to "dark".
func New(style string) Model {
	if style == "" {
		style = "dark"
	}
	manager := cache.NewInMemory[string, string]("help", cache.DefaultExpiration, cache.DefaultCleanupInterval)
	return Model{
		style:   style,
		keymap:  keys.DefaultHelpKeyMap(),
		renders: cache.NewReadThrough[string, string, renderInput](manager, renderMarkdown, false),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Close):
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	return m, nil
}

// View renders the help screen. It replaces the whole editor frame while
// visible.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true)
	divider := styles.HelpFooterStyle.Render(strings.Repeat("─", max(m.width, 1)))
	footer := styles.HelpFooterStyle.Render("j/k to scroll, ? or esc to close")

	var content strings.Builder
	content.WriteString(titleStyle.Render("ved help"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(m.viewport.View())
	content.WriteString("\n")
	content.WriteString(footer)
	return content.String()
}

// Visible returns whether the help screen is currently shown.
func (m Model) Visible() bool {
	return m.visible
}

// Show makes the help screen visible.
func (m *Model) Show() {
	m.visible = true
	m.refreshViewport()
}

// Hide makes the help screen invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the help view's knowledge of the terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.visible {
		m.refreshViewport()
	}
}

// refreshViewport rebuilds the viewport for the current size. Rendered
// documents come from the read-through cache keyed by width and style, so
// bouncing between two window sizes does not re-render every time.
func (m *Model) refreshViewport() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	// Title, divider and footer take one row each.
	contentHeight := max(m.height-3, 1)

	rendered, err := m.renders.Get(
		context.Background(),
		fmt.Sprintf("%d:%s", m.width, m.style),
		renderInput{width: m.width, style: m.style},
		renderTTL,
	)
	if err != nil {
		// A broken glamour pipeline should not take the help screen
		// with it; show the raw document wrapped to the width.
		log.ErrorErr(log.CatUI, "help render failed, using plain markdown", err, "width", m.width)
		rendered = wordwrap.String(helpMarkdown, m.width)
	}

	m.viewport = viewport.New(m.width, contentHeight)
	m.viewport.SetContent(rendered)
}

// renderMarkdown renders the embedded help document with glamour.
// Uses an explicit style instead of WithAutoStyle() to avoid terminal OSC
// queries: auto detection creates a lipgloss renderer that queries the
// terminal for its background, and the responses leak into the input
// stream.
func renderMarkdown(_ context.Context, in renderInput) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(in.style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(in.width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		return "", fmt.Errorf("rendering help markdown: %w", err)
	}
	return out, nil
}
