package session

import "github.com/google/uuid"

// AuthRecord is the durable part of the owner session. Credential holds a bcrypt
// hash, or a plaintext value written by older versions. SessionID names the
// current login; tokens carrying another id are stale.
type AuthRecord struct {
	Credential      string    `json:"credential"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	SessionID       uuid.UUID `json:"sessionId"`
}

type State string

const (
	StateLoggedOut State = "logged_out"
	StateLoggedIn  State = "logged_in"
	StateEditing   State = "editing"
)

// StateOf derives the gate state. Editing without authentication is not a
// reachable state and reports as logged out.
func StateOf(authenticated, editing bool) State {
	switch {
	case !authenticated:
		return StateLoggedOut
	case editing:
		return StateEditing
	default:
		return StateLoggedIn
	}
}
