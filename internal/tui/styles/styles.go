package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bountyops/bountyops/pkg/types"
)

// Status colors.
var (
	ColorRunning = lipgloss.Color("#FFCC00")
	ColorDone    = lipgloss.Color("#00CC00")
	ColorFailed  = lipgloss.Color("#FF0000")
	ColorStopped = lipgloss.Color("#FF6600")
	ColorMuted   = lipgloss.Color("#666666")
	ColorAccent  = lipgloss.Color("#7D56F4")
)

// Styles used across TUI views.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorAccent).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorFailed).
			Bold(true)

	BarStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	StatusRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorRunning)
	StatusDoneStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorDone)
	StatusFailedStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorFailed)
	StatusStoppedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorStopped)
	StatusQueuedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// StatusStyle returns the appropriate style for a scan status.
func StatusStyle(status types.ScanStatus) lipgloss.Style {
	switch status {
	case types.ScanCompleted:
		return StatusDoneStyle
	case types.ScanFailed:
		return StatusFailedStyle
	case types.ScanStopped:
		return StatusStoppedStyle
	case types.ScanQueued:
		return StatusQueuedStyle
	default:
		return StatusRunningStyle
	}
}
