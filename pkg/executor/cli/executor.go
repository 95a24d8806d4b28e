// Package cli provides a line-oriented surface for memopad.
//
// Each input line is one command. It suits scripted use as well as terminals
// without full screen support:
//
//	$ printf 'add buy milk\nlist\n' | memopad -cli
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/entrhq/memopad/pkg/controller"
	"github.com/entrhq/memopad/pkg/memo"
	"github.com/entrhq/memopad/pkg/presenter"
)

// cancelCommand abandons an edit when typed instead of new content
const cancelCommand = "/cancel"

const helpText = `Commands:
  add <text>     create a memo
  list           show all memos
  find <glob>    show memos whose content matches a glob pattern
  edit <id>      replace a memo's content (the next line is the new content)
  delete <id>    delete a memo after confirmation
  copy <id>      copy a memo's content to the clipboard
  help           show this help
  quit           exit`

// Executor reads commands line by line and implements controller.Surface
// by printing to its writer.
type Executor struct {
	ctl    *controller.Controller
	repo   *memo.Repository
	reader *bufio.Reader
	writer io.Writer

	editing bool
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithReader sets a custom input reader (default is os.Stdin).
func WithReader(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.reader = bufio.NewReader(r)
	}
}

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// NewExecutor creates a CLI executor and attaches it to ctl as its surface.
// repo serves the find command.
func NewExecutor(ctl *controller.Controller, repo *memo.Repository, opts ...ExecutorOption) *Executor {
	e := &Executor{
		ctl:    ctl,
		repo:   repo,
		reader: bufio.NewReader(os.Stdin),
		writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(e)
	}

	ctl.Attach(e)
	return e
}

// Run prints the memo list and processes commands until quit, end of input
// or cancellation of ctx.
func (e *Executor) Run(ctx context.Context) error {
	fmt.Fprintln(e.writer, "memopad")
	fmt.Fprintln(e.writer, "Type 'help' for commands. Type 'quit' to exit.")
	fmt.Fprintln(e.writer)

	// A load failure has already been reported
	_ = e.ctl.Start()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if e.editing {
			fmt.Fprint(e.writer, "edit> ")
		} else {
			fmt.Fprint(e.writer, "> ")
		}

		line, err := e.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if e.editing {
			e.handleEditLine(line)
			continue
		}

		if quit := e.handleCommand(strings.TrimSpace(line)); quit {
			return nil
		}
	}
}

// readLine reads one line without its terminator. A final line without a
// newline is returned before io.EOF.
func (e *Executor) readLine() (string, error) {
	line, err := e.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// handleCommand runs one command line. It reports whether the user asked to quit.
func (e *Executor) handleCommand(input string) bool {
	if input == "" {
		return false
	}

	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(e.writer, helpText)
	case "add":
		e.ctl.SetInput(arg)
		_ = e.ctl.Create()
	case "list":
		_ = e.ctl.Start()
	case "find":
		e.handleFind(arg)
	case "edit":
		if id, ok := e.parseID(arg); ok {
			_ = e.ctl.OpenEdit(id)
		}
	case "delete":
		if id, ok := e.parseID(arg); ok {
			_ = e.ctl.RequestDelete(id)
		}
	case "copy":
		if id, ok := e.parseID(arg); ok {
			_ = e.ctl.Copy(id)
		}
	default:
		fmt.Fprintf(e.writer, "Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

// handleEditLine treats line as the new content of the memo being edited.
// The editor stays open until the save succeeds or the user cancels.
func (e *Executor) handleEditLine(line string) {
	if strings.TrimSpace(line) == cancelCommand {
		e.ctl.CancelEdit()
		fmt.Fprintln(e.writer, "Edit cancelled.")
		return
	}
	e.ctl.SetEditBuffer(line)
	_ = e.ctl.ConfirmEdit()
}

func (e *Executor) handleFind(pattern string) {
	memos, err := e.repo.Match(pattern)
	if err != nil {
		e.Alert(controller.LevelError, err.Error())
		return
	}
	if len(memos) == 0 {
		fmt.Fprintln(e.writer, "No matching memos.")
		return
	}
	e.printView(presenter.Render(memos))
}

func (e *Executor) parseID(arg string) (int64, bool) {
	if arg == "" {
		fmt.Fprintln(e.writer, "A memo id is required.")
		return 0, false
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintf(e.writer, "Invalid memo id %q.\n", arg)
		return 0, false
	}
	return id, true
}

// Render prints the memo list
func (e *Executor) Render(view presenter.View) {
	e.printView(view)
}

func (e *Executor) printView(view presenter.View) {
	if view.Empty() {
		fmt.Fprintln(e.writer, view.Placeholder)
		return
	}

	for _, item := range view.Items {
		header := fmt.Sprintf("#%d  %s", item.ID, item.CreatedAt)
		if item.UpdatedAt != "" {
			header += fmt.Sprintf(" (edited %s)", item.UpdatedAt)
		}
		fmt.Fprintln(e.writer, header)
		for _, line := range strings.Split(item.Content, "\n") {
			fmt.Fprintf(e.writer, "    %s\n", line)
		}
	}
}

// ShowEditor prints the current content and switches the next line to edit mode
func (e *Executor) ShowEditor(content string) {
	e.editing = true
	fmt.Fprintln(e.writer, "Current content:")
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(e.writer, "    %s\n", line)
	}
	fmt.Fprintf(e.writer, "Enter the new content on one line, or %s to abort.\n", cancelCommand)
}

// HideEditor leaves edit mode
func (e *Executor) HideEditor() {
	e.editing = false
}

// Alert prints a message prefixed by its level
func (e *Executor) Alert(level controller.Level, message string) {
	var prefix string
	switch level {
	case controller.LevelInfo:
		prefix = "✓"
	case controller.LevelWarn:
		prefix = "!"
	default:
		prefix = "✗"
	}
	fmt.Fprintf(e.writer, "%s %s\n", prefix, message)
}

// Confirm asks prompt and reads the answer from the next input line.
// Anything but y or yes, including end of input, declines.
func (e *Executor) Confirm(prompt string, onYes func()) {
	fmt.Fprintf(e.writer, "%s [y/N] ", prompt)

	answer, err := e.readLine()
	if err != nil {
		fmt.Fprintln(e.writer)
		return
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		onYes()
	}
}
