// Package editor implements the modal text editing core: a rune buffer
// addressed by a single linear cursor offset, a line-based viewport with a
// scroll policy, a frame renderer, and the Bubble Tea model that dispatches
// classified key input to them.
package editor

// Mode represents the current editing mode.
type Mode int

const (
	// ModeNormal is the default mode for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is the mode for inserting text.
	ModeInsert
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}
