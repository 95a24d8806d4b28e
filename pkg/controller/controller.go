// Package controller wires user intents to the memo repository, the edit
// session and the list presenter.
//
// The controller owns no rendering. Everything the user sees goes through a
// Surface, which the terminal UI and the line-oriented CLI both implement.
package controller

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/entrhq/memopad/pkg/memo"
	"github.com/entrhq/memopad/pkg/presenter"
	"github.com/entrhq/memopad/pkg/session"
)

// User facing messages.
const (
	MsgEmptyContent     = "Memo content is empty."
	MsgSaved            = "Memo saved!"
	MsgEditNotFound     = "The memo to edit was not found."
	MsgNoActiveEdit     = "No memo is being edited."
	MsgUpdated          = "Memo updated!"
	MsgDeletePrompt     = "Delete this memo?"
	MsgDeleteNotFound   = "The memo to delete was not found."
	MsgDeleted          = "Memo deleted."
	MsgDeleteFailed     = "Failed to delete memo."
	MsgCopied           = "Memo copied to clipboard."
	MsgCopyNotFound     = "The memo to copy was not found."
	msgTooLongFormat    = "Memo content is too long (max %d characters)."
	msgSaveFailedFormat = "Could not save memos: %v"
	msgLoadFailedFormat = "Could not load memos: %v"
	msgCopyFailedFormat = "Could not copy memo: %v"
)

// Level is the severity of a message shown on a Surface.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Surface displays the controller's output.
type Surface interface {
	// Render replaces the list region.
	Render(view presenter.View)
	// ShowEditor shows the edit overlay with its buffer set to content.
	ShowEditor(content string)
	// HideEditor closes the edit overlay.
	HideEditor()
	// Alert shows a message the user must acknowledge.
	Alert(level Level, message string)
	// Confirm asks a yes/no question and calls onYes only on a yes answer.
	Confirm(prompt string, onYes func())
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// Logger is the subset of logging.Logger the controller uses.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// Controller handles create, edit, delete and copy requests.
// It is not safe for concurrent use; surfaces call it from one goroutine.
type Controller struct {
	repo      *memo.Repository
	session   *session.Session
	surface   Surface
	clipboard Clipboard
	logger    Logger
	input     string
}

// Option configures a Controller.
type Option func(*Controller)

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(ctl *Controller) {
		ctl.clipboard = c
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(ctl *Controller) {
		ctl.logger = l
	}
}

// New creates a controller. The surface may be attached later with Attach.
func New(repo *memo.Repository, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		repo:      repo,
		session:   session.New(),
		surface:   surface,
		clipboard: systemClipboard{},
		logger:    nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Attach sets the surface used for all further output.
func (c *Controller) Attach(surface Surface) {
	c.surface = surface
}

// Start renders the initial list.
func (c *Controller) Start() error {
	c.logger.Debugf("controller started")
	return c.render()
}

// Input returns the create input.
func (c *Controller) Input() string {
	return c.input
}

// SetInput replaces the create input.
func (c *Controller) SetInput(text string) {
	c.input = text
}

// Create saves the create input as a new memo.
// The input is cleared only when the memo was saved.
func (c *Controller) Create() error {
	m, err := c.repo.Create(c.input)
	if err != nil {
		c.logger.Debugf("create rejected: %v", err)
		return c.fail(err, "")
	}

	c.logger.Infof("memo %d created", m.ID)
	c.input = ""
	if err := c.render(); err != nil {
		return err
	}
	c.surface.Alert(LevelInfo, MsgSaved)
	return nil
}

// OpenEdit starts editing the memo with id and shows the editor.
func (c *Controller) OpenEdit(id int64) error {
	m, err := c.session.Open(id, c.repo)
	if err != nil {
		c.logger.Debugf("open edit %d: %v", id, err)
		return c.fail(err, MsgEditNotFound)
	}

	c.logger.Debugf("editing memo %d", id)
	c.surface.ShowEditor(m.Content)
	return nil
}

// Editing returns the id of the memo being edited, if any.
func (c *Controller) Editing() (int64, bool) {
	return c.session.Editing()
}

// EditBuffer returns the edit buffer.
func (c *Controller) EditBuffer() string {
	return c.session.Buffer()
}

// SetEditBuffer replaces the edit buffer.
func (c *Controller) SetEditBuffer(text string) {
	c.session.SetBuffer(text)
}

// ConfirmEdit writes the edit buffer to the memo being edited.
// On failure the editor stays open with the buffer intact.
func (c *Controller) ConfirmEdit() error {
	id, editing := c.session.Editing()
	if !editing {
		c.surface.Alert(LevelError, MsgNoActiveEdit)
		return session.ErrNoActiveSession
	}

	if _, err := c.session.Commit(c.repo); err != nil {
		c.logger.Debugf("update %d rejected: %v", id, err)
		return c.fail(err, MsgEditNotFound)
	}

	c.logger.Infof("memo %d updated", id)
	c.surface.HideEditor()
	if err := c.render(); err != nil {
		return err
	}
	c.surface.Alert(LevelInfo, MsgUpdated)
	return nil
}

// CancelEdit abandons the edit without saving anything.
func (c *Controller) CancelEdit() {
	if id, editing := c.session.Editing(); editing {
		c.logger.Debugf("edit of memo %d cancelled", id)
	}
	c.session.Clear()
	c.surface.HideEditor()
}

// Dismiss closes the editor after an outside click. It behaves like CancelEdit.
func (c *Controller) Dismiss() {
	c.CancelEdit()
}

// RequestDelete asks the user to confirm deleting the memo with id.
// Declining does nothing.
func (c *Controller) RequestDelete(id int64) error {
	c.surface.Confirm(MsgDeletePrompt, func() {
		_ = c.Delete(id)
	})
	return nil
}

// Delete removes the memo with id without asking.
func (c *Controller) Delete(id int64) error {
	if err := c.repo.Delete(id); err != nil {
		c.logger.Debugf("delete %d: %v", id, err)
		if errors.Is(err, memo.ErrNotFound) {
			c.surface.Alert(LevelError, MsgDeleteNotFound)
			return err
		}
		c.logger.Errorf("delete %d failed: %v", id, err)
		c.surface.Alert(LevelError, MsgDeleteFailed)
		return err
	}

	c.logger.Infof("memo %d deleted", id)
	if err := c.render(); err != nil {
		return err
	}
	c.surface.Alert(LevelInfo, MsgDeleted)
	return nil
}

// Copy writes the content of the memo with id to the clipboard.
func (c *Controller) Copy(id int64) error {
	m, err := c.repo.Get(id)
	if err != nil {
		return c.fail(err, MsgCopyNotFound)
	}

	if err := c.clipboard.WriteAll(m.Content); err != nil {
		c.logger.Errorf("copy %d: %v", id, err)
		c.surface.Alert(LevelError, fmt.Sprintf(msgCopyFailedFormat, err))
		return err
	}

	c.logger.Debugf("memo %d copied", id)
	c.surface.Alert(LevelInfo, MsgCopied)
	return nil
}

// render reloads the list and hands it to the surface.
func (c *Controller) render() error {
	memos, err := c.repo.List()
	if err != nil {
		c.logger.Errorf("load memos: %v", err)
		c.surface.Alert(LevelError, fmt.Sprintf(msgLoadFailedFormat, err))
		return err
	}
	c.surface.Render(presenter.Render(memos))
	return nil
}

// fail maps err to a message on the surface and returns it.
func (c *Controller) fail(err error, notFound string) error {
	switch {
	case errors.Is(err, memo.ErrEmptyContent):
		c.surface.Alert(LevelWarn, MsgEmptyContent)
	case errors.Is(err, memo.ErrContentTooLong):
		c.surface.Alert(LevelWarn, fmt.Sprintf(msgTooLongFormat, c.repo.MaxContentLength()))
	case errors.Is(err, memo.ErrNotFound) && notFound != "":
		c.surface.Alert(LevelError, notFound)
	default:
		c.logger.Errorf("storage failure: %v", err)
		c.surface.Alert(LevelError, fmt.Sprintf(msgSaveFailedFormat, err))
	}
	return err
}
