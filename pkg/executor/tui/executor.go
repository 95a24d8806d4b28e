// Package tui provides the interactive terminal interface for memopad.
//
// The TUI codebase is split into multiple files for better organization:
// - executor.go: Executor implementation and program lifecycle
// - model.go: Core model structure and the controller.Surface methods
// - update.go: Bubble Tea Update function and message handling
// - view.go: Bubble Tea View function and rendering
// - overlay.go: Overlay stack and placement
// - list.go: Memo list items
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/memopad/pkg/controller"
)

// Executor runs the memo pad as a full screen terminal program.
type Executor struct {
	ctl       *controller.Controller
	logger    Logger
	mouse     bool
	altScreen bool
	program   *tea.Program
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger for received messages.
func WithLogger(l Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithMouse enables mouse events, which the editor needs for outside-click dismissal.
func WithMouse(enabled bool) Option {
	return func(e *Executor) {
		e.mouse = enabled
	}
}

// WithAltScreen runs the program in the terminal's alternate screen.
func WithAltScreen(enabled bool) Option {
	return func(e *Executor) {
		e.altScreen = enabled
	}
}

// NewExecutor creates a TUI executor driving ctl.
func NewExecutor(ctl *controller.Controller, opts ...Option) *Executor {
	e := &Executor{
		ctl:       ctl,
		mouse:     true,
		altScreen: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run starts the TUI and blocks until the user exits or ctx is cancelled.
func (e *Executor) Run(ctx context.Context) error {
	m := newModel(e.ctl, e.logger)

	// A load failure is shown on screen and is not fatal
	if err := e.ctl.Start(); err != nil {
		m.log.Debugf("initial render failed: %v", err)
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if e.altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if e.mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	e.program = tea.NewProgram(m, opts...)
	if _, err := e.program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	return nil
}
