package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/memopad/pkg/controller"
	"github.com/entrhq/memopad/pkg/executor/tui/types"
)

// MessageOverlay shows a controller message until the user acknowledges it.
type MessageOverlay struct {
	*BaseOverlay
	level   controller.Level
	message string
}

// NewMessageOverlay creates a message overlay sized for a screen of width columns.
func NewMessageOverlay(level controller.Level, message string, width int) *MessageOverlay {
	const (
		minWidth  = 30
		maxWidth  = 60
		maxHeight = 8
	)

	contentWidth := clamp(width-10, minWidth, maxWidth)
	wrapped := lipgloss.NewStyle().Width(contentWidth).Render(message)
	viewportHeight := clamp(lipgloss.Height(wrapped), 1, maxHeight)

	overlay := &MessageOverlay{
		level:   level,
		message: message,
	}

	overlay.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		ViewportWidth:  contentWidth,
		ViewportHeight: viewportHeight,
		Content:        wrapped,
		OnCustomKey:    acknowledge,
		RenderHeader:   overlay.renderHeader,
		RenderFooter:   overlay.renderFooter,
	})
	return overlay
}

// Update closes the overlay on Enter or Esc. Every other key is swallowed so
// the message blocks the rest of the interface.
func (o *MessageOverlay) Update(msg tea.Msg) (types.Overlay, tea.Cmd) {
	_, closed, cmd := o.BaseOverlay.Update(msg)
	if closed {
		return nil, cmd
	}
	return o, cmd
}

func acknowledge(msg tea.KeyMsg) (bool, bool, tea.Cmd) {
	if msg.String() == keyEnter {
		return true, true, nil
	}
	return false, false, nil
}

// Level returns the severity of the message
func (o *MessageOverlay) Level() controller.Level {
	return o.level
}

// Message returns the message text
func (o *MessageOverlay) Message() string {
	return o.message
}

func (o *MessageOverlay) renderHeader() string {
	var title string
	style := types.OverlayTitleStyle
	switch o.level {
	case controller.LevelInfo:
		title = "✓ Done"
		style = style.Foreground(types.MintGreen)
	case controller.LevelWarn:
		title = "! Check your input"
		style = style.Foreground(types.CoralPink)
	default:
		title = "✗ Error"
	}
	return style.Render(title) + "\n"
}

func (o *MessageOverlay) renderFooter() string {
	return "\n" + types.OverlayHelpStyle.Render("Press Enter or Esc to close")
}

// View renders the message overlay
func (o *MessageOverlay) View() string {
	return o.BaseOverlay.View(o.Viewport().Width)
}
