// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the control keybindings the editor handles identically in
// both modes. Mode commands ('i', 'h', 'j', 'k', 'l', 'x', '?') are plain
// runes dispatched by the editor's mode switch, not bindings: in Insert
// mode those same runes are text.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Editing
	NextLine key.Binding
	Delete   key.Binding

	// General
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
// Space moves right and backspace moves left in both modes; neither is
// ever inserted.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "backspace"),
			key.WithHelp("←/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→/l", "move right"),
		),

		// Editing
		NextLine: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start of next line"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del/x", "delete character"),
		),

		// General
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "normal mode"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// HelpKeyMap defines the keybindings for the help view.
type HelpKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Close key.Binding
}

// DefaultHelpKeyMap returns the keybindings for the help view.
// Inside the help view 'j' and 'k' scroll; they only move the cursor in
// the editor itself.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "?"),
			key.WithHelp("esc", "close help"),
		),
	}
}
