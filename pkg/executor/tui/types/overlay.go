package types

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a modal component drawn above the main view.
//
// Update returns nil to signal that the overlay wants to close. Any command
// returned alongside nil is still run by the model.
type Overlay interface {
	Update(msg tea.Msg) (Overlay, tea.Cmd)
	View() string
}
