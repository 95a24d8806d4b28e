package types

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the model and the overlays.
var (
	SalmonPink  = lipgloss.Color("#FFB3BA") // Soft pastel salmon pink - primary accent
	CoralPink   = lipgloss.Color("#FFCCCB") // Lighter coral accent - secondary
	MintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - success/accept states
	MutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	BrightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
)

var (
	// OverlayTitleStyle is used for main overlay titles
	OverlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SalmonPink)

	// OverlayHelpStyle is used for help text and hints
	OverlayHelpStyle = lipgloss.NewStyle().
				Foreground(MutedGray).
				Italic(true)

	// ButtonStyle is an unselected overlay button
	ButtonStyle = lipgloss.NewStyle().
			Foreground(BrightWhite).
			Background(MutedGray).
			Padding(0, 1)

	// SelectedButtonStyle is the focused overlay button
	SelectedButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(MintGreen).
				Bold(true).
				Padding(0, 1)
)

// CreateOverlayContainerStyle returns the bordered box every overlay is drawn in.
// The border and padding add 6 columns to contentWidth.
func CreateOverlayContainerStyle(contentWidth int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SalmonPink).
		Padding(1, 2).
		Width(contentWidth + 4)
}
