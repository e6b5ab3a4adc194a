package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the scan UI
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers
	SuccessColor = lipgloss.Color("#43BF6D") // Green - found devices
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

var (
	// HeaderStyle is for the scan banner line
	HeaderStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			PaddingLeft(2)

	// HeaderDetailStyle is for the begin/end address lines
	HeaderDetailStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// DeviceTitleStyle is for a found device's address line
	DeviceTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true).
				PaddingLeft(2)

	// DeviceFieldStyle is for a found device's attribute lines
	DeviceFieldStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				PaddingLeft(4)

	// StatusStyle is for the live progress line
	StatusStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// SummaryStyle is for the end-of-scan totals
	SummaryStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true).
			PaddingLeft(2)
)

// IsTerminal reports whether stdout is attached to a terminal. Piped output
// falls back to the plain console reporter.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
