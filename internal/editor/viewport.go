package editor

// Viewport is the window the buffer is seen through: the terminal
// dimensions plus the first buffer row currently shown. The bottom
// terminal row is reserved for the status line, so Height-1 rows of
// content are visible. There is no horizontal scroll; long lines are
// truncated for display only.
type Viewport struct {
	Width   int
	Height  int
	TopLine int
}

// FollowDown scrolls down one line when the given cursor row has reached
// the bottom of the visible band, keeping the cursor visually pinned one
// row above the status line. Reports whether it scrolled.
func (v *Viewport) FollowDown(row int) bool {
	if row-v.TopLine >= v.Height-2 {
		v.TopLine++
		return true
	}
	return false
}

// FollowUp scrolls up one line when the given cursor row has reached the
// top of the visible band and earlier rows exist. Reports whether it
// scrolled.
func (v *Viewport) FollowUp(row int) bool {
	if v.TopLine != 0 && row-v.TopLine <= 0 {
		v.TopLine--
		return true
	}
	return false
}

// SetTopLine restores a remembered scroll position, clamped so the given
// cursor row stays inside the visible band.
func (v *Viewport) SetTopLine(top, row int) {
	low := row - (v.Height - 2)
	if low < 0 {
		low = 0
	}
	v.TopLine = clamp(top, low, row)
}

func clamp(n, low, high int) int {
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}
