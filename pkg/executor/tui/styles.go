package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/memopad/pkg/executor/tui/types"
)

// Common Styles
// The palette itself lives in types so the overlays share it.
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(types.SalmonPink).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(types.MutedGray).
				Italic(true).
				Padding(1, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(types.MutedGray).
			Padding(0, 1)

	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(types.MutedGray)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(types.SalmonPink).
			Padding(0, 1)
)
