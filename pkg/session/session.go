// Package session tracks the single memo that is currently being edited.
package session

import (
	"errors"

	"github.com/entrhq/memopad/pkg/memo"
)

// ErrNoActiveSession is returned when a commit is attempted while Idle.
var ErrNoActiveSession = errors.New("session: no memo is being edited")

// State is the edit session state.
type State int

const (
	// Idle means no memo is being edited
	Idle State = iota
	// Editing means exactly one memo id is held
	Editing
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// Finder looks up a memo by id.
type Finder interface {
	Get(id int64) (memo.Memo, error)
}

// Updater replaces a memo's content.
type Updater interface {
	Update(id int64, content string) (memo.Memo, error)
}

// Session is a single-slot state machine: Idle or Editing(id).
// The zero value is Idle.
type Session struct {
	state  State
	id     int64
	buffer string
}

// New returns an idle session.
func New() *Session {
	return &Session{}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Editing returns the id being edited and true, or 0 and false when Idle.
func (s *Session) Editing() (int64, bool) {
	if s.state != Editing {
		return 0, false
	}
	return s.id, true
}

// Buffer returns the transient edit input.
func (s *Session) Buffer() string {
	return s.buffer
}

// SetBuffer replaces the transient edit input.
func (s *Session) SetBuffer(text string) {
	s.buffer = text
}

// Open starts editing the memo with id. The buffer is filled with the memo's
// current content. If the memo does not exist the session is left as it was
// and the lookup error is returned.
func (s *Session) Open(id int64, finder Finder) (memo.Memo, error) {
	m, err := finder.Get(id)
	if err != nil {
		return memo.Memo{}, err
	}

	s.state = Editing
	s.id = id
	s.buffer = m.Content
	return m, nil
}

// Commit writes the buffer to the memo being edited. On success the session
// returns to Idle; on failure it stays in Editing with the buffer intact.
func (s *Session) Commit(updater Updater) (memo.Memo, error) {
	if s.state != Editing {
		return memo.Memo{}, ErrNoActiveSession
	}

	m, err := updater.Update(s.id, s.buffer)
	if err != nil {
		return memo.Memo{}, err
	}

	s.Clear()
	return m, nil
}

// Clear returns the session to Idle and empties the buffer.
func (s *Session) Clear() {
	s.state = Idle
	s.id = 0
	s.buffer = ""
}
