// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names
	FillerColor     = lipgloss.AdaptiveColor{Light: "4", Dark: "4"}             // '~' rows past the end of the buffer (terminal dark blue)
	StatusTextColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"} // status row fields
	StatusModeColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"} // the -- MODE -- segment
	NoticeColor     = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // transient notices
	HelpFooterColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // help view footer hints

	FillerStyle     = lipgloss.NewStyle().Foreground(FillerColor)
	StatusBarStyle  = lipgloss.NewStyle().Foreground(StatusTextColor)
	StatusModeStyle = lipgloss.NewStyle().Foreground(StatusModeColor).Bold(true)
	NoticeStyle     = lipgloss.NewStyle().Foreground(NoticeColor).Bold(true)
	HelpFooterStyle = lipgloss.NewStyle().Foreground(HelpFooterColor)
)

// ApplyTheme applies custom theme colors from configuration.
// Empty strings are ignored, keeping the default values. The style
// variables are rebuilt so the new colors take effect regardless of
// package init order.
func ApplyTheme(filler, status, notice string) {
	if filler != "" {
		FillerColor = lipgloss.AdaptiveColor{Light: filler, Dark: filler}
		FillerStyle = lipgloss.NewStyle().Foreground(FillerColor)
	}
	if status != "" {
		StatusTextColor = lipgloss.AdaptiveColor{Light: status, Dark: status}
		StatusBarStyle = lipgloss.NewStyle().Foreground(StatusTextColor)
	}
	if notice != "" {
		NoticeColor = lipgloss.AdaptiveColor{Light: notice, Dark: notice}
		NoticeStyle = lipgloss.NewStyle().Foreground(NoticeColor).Bold(true)
	}
}
