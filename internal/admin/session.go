// Package admin implements the pass-code gate for rule editing. A session
// is a two-state machine, Locked or Unlocked, with a single transition on a
// successful pass-code check and no expiry. The session is passed explicitly
// to whatever surface needs it; there is no ambient global state.
package admin

import "crypto/subtle"

// State is the session gate state.
type State int

const (
	Locked State = iota
	Unlocked
)

// Session tracks whether the admin gate has been opened. Sessions start
// Locked and stay Unlocked for their remaining lifetime once opened.
type Session struct {
	state    State
	passcode string
}

// NewSession returns a Locked session guarding mutations with the given
// pass-code.
func NewSession(passcode string) *Session {
	return &Session{state: Locked, passcode: passcode}
}

// Unlock attempts the Locked -> Unlocked transition. It returns true when
// the attempt matches the configured pass-code or the session was already
// unlocked.
func (s *Session) Unlock(attempt string) bool {
	if s.state == Unlocked {
		return true
	}
	if subtle.ConstantTimeCompare([]byte(attempt), []byte(s.passcode)) == 1 {
		s.state = Unlocked
		return true
	}
	return false
}

// Unlocked reports whether mutations are currently allowed.
func (s *Session) Unlocked() bool {
	return s.state == Unlocked
}
