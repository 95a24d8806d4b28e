package overlay

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/memopad/pkg/executor/tui/types"
)

// EditorOverlay edits the content of one memo.
//
// Enter submits the buffer but leaves the overlay open; the model closes it
// once the memo has been saved. Esc closes it without saving.
type EditorOverlay struct {
	*BaseOverlay
	textarea textarea.Model
}

// NewEditorOverlay creates an editor overlay whose buffer holds content.
func NewEditorOverlay(content string, width, height int) *EditorOverlay {
	const (
		minWidth  = 30
		maxWidth  = 70
		minHeight = 3
		maxHeight = 12
	)

	contentWidth := clamp(width-10, minWidth, maxWidth)
	textHeight := clamp(height-12, minHeight, maxHeight)

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Placeholder = "Memo content"
	ta.SetWidth(contentWidth)
	ta.SetHeight(textHeight)
	ta.SetValue(content)
	ta.Focus()

	overlay := &EditorOverlay{textarea: ta}

	overlay.BaseOverlay = NewBaseOverlay(BaseOverlayConfig{
		ViewportWidth:         contentWidth,
		ViewportHeight:        textHeight,
		OnClose:               func() tea.Cmd { return func() tea.Msg { return types.EditCancelMsg{} } },
		OnCustomKey:           overlay.handleKey,
		RenderHeader:          overlay.renderHeader,
		RenderFooter:          overlay.renderFooter,
		FooterRendersViewport: true,
	})
	return overlay
}

// Update handles editing keys. Everything else, such as the cursor blink,
// goes to the textarea.
func (e *EditorOverlay) Update(msg tea.Msg) (types.Overlay, tea.Cmd) {
	if handled, closed, cmd := e.BaseOverlay.Update(msg); handled {
		if closed {
			return nil, cmd
		}
		return e, cmd
	}

	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return e, cmd
}

// handleKey submits on Enter, inserts a newline on Alt+Enter and gives every
// other key except the close keys to the textarea.
func (e *EditorOverlay) handleKey(msg tea.KeyMsg) (bool, bool, tea.Cmd) {
	switch {
	case msg.String() == keyEsc || msg.String() == keyCtrlC:
		return false, false, nil
	case msg.Type == tea.KeyEnter && msg.Alt:
		e.textarea.InsertString("\n")
		return true, false, nil
	case msg.Type == tea.KeyEnter:
		content := e.textarea.Value()
		return true, false, func() tea.Msg { return types.EditSubmitMsg{Content: content} }
	}

	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return true, false, cmd
}

// Value returns the current buffer
func (e *EditorOverlay) Value() string {
	return e.textarea.Value()
}

func (e *EditorOverlay) renderHeader() string {
	return types.OverlayTitleStyle.Render("Edit memo") + "\n"
}

func (e *EditorOverlay) renderFooter() string {
	return e.textarea.View() + "\n\n" +
		types.OverlayHelpStyle.Render("Enter: Save • Alt+Enter: New line • Esc: Cancel")
}

// View renders the editor overlay
func (e *EditorOverlay) View() string {
	return e.BaseOverlay.View(e.Viewport().Width)
}
