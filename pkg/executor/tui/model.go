package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"

	"github.com/entrhq/memopad/pkg/controller"
	"github.com/entrhq/memopad/pkg/executor/tui/overlay"
	"github.com/entrhq/memopad/pkg/executor/tui/types"
	"github.com/entrhq/memopad/pkg/presenter"
)

// Logger is the subset of logging.Logger the TUI uses.
type Logger interface {
	Debugf(format string, v ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}

// model represents the state of the TUI application.
// It implements controller.Surface; the controller is only ever called from
// Update, so every surface method also runs on the Update goroutine.
type model struct {
	// Bubble Tea components
	list     list.Model
	textarea textarea.Model

	ctl *controller.Controller
	log Logger

	// Current list region
	view  presenter.View
	bound []presenter.Bound

	// UI state
	overlay        *overlayState
	pendingConfirm func()
	confirmID      int

	// Window dimensions
	width  int
	height int
	ready  bool
}

// newModel creates a model and attaches it to ctl as its surface
func newModel(ctl *controller.Controller, log Logger) *model {
	if log == nil {
		log = nopLogger{}
	}

	ta := textarea.New()
	ta.Placeholder = "Write a memo..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.Focus()

	m := &model{
		list:     newMemoList(),
		textarea: ta,
		ctl:      ctl,
		log:      log,
		overlay:  newOverlayState(),
		view:     presenter.View{Placeholder: presenter.Placeholder},
	}
	ctl.Attach(m)
	return m
}

// Render replaces the list region
func (m *model) Render(view presenter.View) {
	m.view = view
	m.bound = presenter.Bind(view, m.ctl)

	idx := m.list.Index()
	m.list.SetItems(toListItems(m.bound))
	if n := len(m.bound); n > 0 {
		m.list.Select(min(idx, n-1))
	}
}

// ShowEditor opens the edit overlay with content in its buffer
func (m *model) ShowEditor(content string) {
	m.overlay.remove(types.OverlayModeEditor)
	m.overlay.pushOverlay(types.OverlayModeEditor, overlay.NewEditorOverlay(content, m.width, m.height))
	m.textarea.Blur()
}

// HideEditor closes the edit overlay
func (m *model) HideEditor() {
	m.overlay.remove(types.OverlayModeEditor)
	if !m.overlay.isActive() {
		m.textarea.Focus()
	}
}

// Alert shows a message on top of whatever is open
func (m *model) Alert(level controller.Level, message string) {
	m.log.Debugf("alert (%s): %s", level, message)
	m.overlay.pushOverlay(types.OverlayModeMessage, overlay.NewMessageOverlay(level, message, m.width))
	m.textarea.Blur()
}

// Confirm asks prompt and runs onYes from Update if the answer is yes
func (m *model) Confirm(prompt string, onYes func()) {
	m.confirmID++
	m.pendingConfirm = onYes
	m.overlay.pushOverlay(types.OverlayModeConfirm, overlay.NewConfirmOverlay(m.confirmID, prompt, m.width))
	m.textarea.Blur()
}

// ClearOverlay closes the current overlay.
// If there's an overlay stack, it pops back to the previous overlay.
func (m *model) ClearOverlay() {
	if !m.overlay.popOverlay() {
		m.textarea.Focus()
	}
}

// selected returns the bound descriptor under the list cursor
func (m *model) selected() (presenter.Bound, bool) {
	item, ok := m.list.SelectedItem().(memoItem)
	if !ok {
		return presenter.Bound{}, false
	}
	return item.Bound, true
}
