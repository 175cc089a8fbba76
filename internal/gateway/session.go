package gateway

import "sync/atomic"

// State tracks a connection through its lifecycle.
type State int32

const (
	StateConnecting State = iota
	StateAuthenticating
	StateActive
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticating:
		return "authenticating"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session binds an authenticated identity to one live connection. The
// identity fields are set exactly once, during Admit, and never mutated
// afterwards; Disconnect relies on them to release the right presence
// entry.
type Session struct {
	UserID   string
	Username string

	client Client
	state  atomic.Int32
}

func newSession(c Client) *Session {
	s := &Session{client: c}
	s.state.Store(int32(StateConnecting))
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// transition moves the session from one state to the next atomically.
// It reports false when the session is no longer in the expected state,
// which makes conflicting outcomes (authentication success vs.
// disconnect, double disconnect) mutually exclusive.
func (s *Session) transition(from, to State) bool {
	return s.state.CompareAndSwap(int32(from), int32(to))
}
