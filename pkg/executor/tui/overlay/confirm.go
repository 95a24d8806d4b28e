package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/memopad/pkg/executor/tui/types"
)

// ConfirmChoice is the button selected in a ConfirmOverlay
type ConfirmChoice int

const (
	// ConfirmChoiceYes accepts the question
	ConfirmChoiceYes ConfirmChoice = iota
	// ConfirmChoiceNo declines the question
	ConfirmChoiceNo
)

// ConfirmOverlay asks a yes/no question. Closing it always produces a
// types.ConfirmResultMsg.
type ConfirmOverlay struct {
	*BaseOverlay
	id       int
	prompt   string
	selected ConfirmChoice
}

// NewConfirmOverlay creates a confirm overlay with No selected. id is echoed
// in the result message.
func NewConfirmOverlay(id int, prompt string, width int) *ConfirmOverlay {
	const (
		minWidth = 30
		maxWidth = 50
	)

	contentWidth := clamp(width-10, minWidth, maxWidth)

	overlay := &ConfirmOverlay{
		id:       id,
		prompt:   prompt,
		selected: ConfirmChoiceNo,
	}

	overlay.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		ViewportWidth:         contentWidth,
		ViewportHeight:        1,
		Content:               prompt,
		OnClose:               func() tea.Cmd { return overlay.answer(false) },
		OnCustomKey:           overlay.handleKey,
		RenderHeader:          overlay.renderHeader,
		RenderFooter:          overlay.renderFooter,
		FooterRendersViewport: true,
	})
	return overlay
}

// Update closes the overlay once the question is answered
func (c *ConfirmOverlay) Update(msg tea.Msg) (types.Overlay, tea.Cmd) {
	_, closed, cmd := c.BaseOverlay.Update(msg)
	if closed {
		return nil, cmd
	}
	return c, cmd
}

// handleKey answers on y and n, submits the selection on Enter and moves it
// on Tab and the arrow keys. Esc falls through to the close key.
func (c *ConfirmOverlay) handleKey(msg tea.KeyMsg) (bool, bool, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return true, true, c.answer(true)
	case "n", "N":
		return true, true, c.answer(false)
	case keyEnter:
		return true, true, c.answer(c.selected == ConfirmChoiceYes)
	case keyTab, keyLeft, keyRight:
		c.toggle()
		return true, false, nil
	}
	return false, false, nil
}

// Selected returns the highlighted choice
func (c *ConfirmOverlay) Selected() ConfirmChoice {
	return c.selected
}

// Prompt returns the question being asked
func (c *ConfirmOverlay) Prompt() string {
	return c.prompt
}

func (c *ConfirmOverlay) toggle() {
	if c.selected == ConfirmChoiceYes {
		c.selected = ConfirmChoiceNo
	} else {
		c.selected = ConfirmChoiceYes
	}
}

func (c *ConfirmOverlay) answer(yes bool) tea.Cmd {
	id := c.id
	return func() tea.Msg {
		return types.ConfirmResultMsg{ID: id, Yes: yes}
	}
}

func (c *ConfirmOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render("Confirm") + "\n"
}

// renderButtons renders the Yes and No buttons with the selection highlighted
func (c *ConfirmOverlay) renderButtons() string {
	yes, no := types.ButtonStyle, types.ButtonStyle
	if c.selected == ConfirmChoiceYes {
		yes = types.SelectedButtonStyle
	} else {
		no = types.SelectedButtonStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		yes.Render("✓ Yes"),
		"  ",
		no.Render("✗ No"),
	)
}

func (c *ConfirmOverlay) renderFooter() string {
	contentWidth := c.Viewport().Width

	var footer strings.Builder
	footer.WriteString(c.Viewport().View())
	footer.WriteString("\n\n")

	buttons := c.renderButtons()
	footer.WriteString(strings.Repeat(" ", max(0, (contentWidth-lipgloss.Width(buttons))/2)) + buttons)
	footer.WriteString("\n\n")

	hints := types.OverlayHelpStyle.Render("y: Yes • n/Esc: No • Tab: Toggle")
	footer.WriteString(strings.Repeat(" ", max(0, (contentWidth-lipgloss.Width(hints))/2)) + hints)

	return footer.String()
}

// View renders the confirm overlay
func (c *ConfirmOverlay) View() string {
	return c.BaseOverlay.View(c.Viewport().Width)
}
