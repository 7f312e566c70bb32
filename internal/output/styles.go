package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette: named constants for the ANSI 256 colors used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: module ids, package names,
	// artifact paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "valid" descriptor status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings about skipped descriptor entries.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "invalid" descriptor status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles shared by the summary renderer.
var (
	// StyleNoun styles identifiable nouns (module ids, package names, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (field labels, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles heading and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Descriptor status constants.
const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
)

// StatusStyle returns the lipgloss style for a given descriptor status
// string. Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusValid:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusInvalid:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
