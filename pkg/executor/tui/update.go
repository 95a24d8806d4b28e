package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/memopad/pkg/executor/tui/types"
	"github.com/entrhq/memopad/pkg/presenter"
)

// Key bindings for the per-item triggers
const (
	keyEdit   = "ctrl+e"
	keyDelete = "ctrl+d"
	keyCopy   = "ctrl+y"
)

// Init starts the cursor blink.
func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles all state updates for the TUI model.
// This is the main event loop handler for Bubble Tea, and the only place
// the controller is called from.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.log.Debugf("Received tea.WindowSizeMsg: width=%d, height=%d", msg.Width, msg.Height)
		return m.handleWindowResize(msg)

	case types.EditSubmitMsg:
		m.log.Debugf("Received EditSubmitMsg")
		return m.handleEditSubmit(msg)

	case types.EditCancelMsg:
		m.log.Debugf("Received EditCancelMsg")
		m.ctl.CancelEdit()
		return m, nil

	case types.ConfirmResultMsg:
		m.log.Debugf("Received ConfirmResultMsg: id=%d yes=%t", msg.ID, msg.Yes)
		return m.handleConfirmResult(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		m.log.Debugf("Received tea.KeyMsg: %s", msg.String())
		return m.handleKeyPress(msg)
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the overlay if one is open, else to the input
func (m *model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.overlay.isActive() {
		return m.updateOverlay(msg)
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// updateOverlay passes msg to the active overlay and closes it if it asks to.
// A command returned by a closing overlay is still run.
func (m *model) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.overlay.overlay.Update(msg)
	if updated == nil {
		m.log.Debugf("overlay %s closed", m.overlay.mode)
		m.ClearOverlay()
	} else {
		m.overlay.overlay = updated
	}
	return m, cmd
}

// handleWindowResize processes window size change events
func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.textarea.SetWidth(max(m.width-8, 10))
	m.list.SetSize(max(m.width-4, 10), m.listHeight())
	m.ready = true
	return m, nil
}

// listHeight is what remains of the screen for the list region
func (m *model) listHeight() int {
	const (
		headerHeight    = 2 // title + tips
		listBorder      = 2
		inputBorder     = 2
		statusBarHeight = 1
	)
	h := m.height - headerHeight - listBorder - (m.textarea.Height() + inputBorder) - statusBarHeight
	return max(h, 3)
}

// handleKeyPress processes keyboard input
func (m *model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// An open overlay receives every key
	if m.overlay.isActive() {
		return m.updateOverlay(msg)
	}

	switch msg.String() {
	case keyEdit:
		return m.fire(presenter.ActionEdit)
	case keyDelete:
		return m.fire(presenter.ActionDelete)
	case keyCopy:
		return m.handleCopy()
	}

	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd

	case tea.KeyEnter:
		if msg.Alt {
			m.textarea.InsertString("\n")
			return m, nil
		}
		return m.handleCreate()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// handleCreate saves the input as a new memo. The input is cleared by the
// controller only on success.
func (m *model) handleCreate() (tea.Model, tea.Cmd) {
	m.ctl.SetInput(m.textarea.Value())
	if err := m.ctl.Create(); err != nil {
		m.log.Debugf("create failed: %v", err)
	}
	m.textarea.SetValue(m.ctl.Input())
	return m, nil
}

// fire runs a trigger of the selected memo
func (m *model) fire(action presenter.Action) (tea.Model, tea.Cmd) {
	b, ok := m.selected()
	if !ok {
		return m, nil
	}
	if _, err := b.Fire(action); err != nil {
		m.log.Debugf("%s memo %d: %v", action, b.ID, err)
	}
	return m, nil
}

// handleCopy copies the selected memo to the clipboard
func (m *model) handleCopy() (tea.Model, tea.Cmd) {
	b, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.ctl.Copy(b.ID); err != nil {
		m.log.Debugf("copy memo %d: %v", b.ID, err)
	}
	return m, nil
}

// handleEditSubmit saves the editor buffer
func (m *model) handleEditSubmit(msg types.EditSubmitMsg) (tea.Model, tea.Cmd) {
	m.ctl.SetEditBuffer(msg.Content)
	if err := m.ctl.ConfirmEdit(); err != nil {
		m.log.Debugf("edit failed: %v", err)
	}
	return m, nil
}

// handleConfirmResult runs the pending confirm callback on a yes answer.
// Answers to an earlier prompt are dropped.
func (m *model) handleConfirmResult(msg types.ConfirmResultMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.confirmID {
		m.log.Debugf("dropping answer to stale confirm %d (current %d)", msg.ID, m.confirmID)
		return m, nil
	}

	onYes := m.pendingConfirm
	m.pendingConfirm = nil
	if msg.Yes && onYes != nil {
		onYes()
	}
	return m, nil
}

// handleMouse dismisses the editor on a click outside of it
func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.overlay.isActive() {
		return m, nil
	}

	if m.overlay.mode == types.OverlayModeEditor &&
		msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		x, y, w, h := overlayBounds(m.overlay.overlay.View(), m.width, m.height)
		if !inside(msg.X, msg.Y, x, y, w, h) {
			m.log.Debugf("click outside editor at %d,%d", msg.X, msg.Y)
			m.ctl.Dismiss()
			return m, nil
		}
	}

	return m.updateOverlay(msg)
}
