package shell

import "net/http"

// Identity is the session service the shell relies on.
type Identity interface {
	// CurrentSession returns the user of the current session. It returns
	// an error wrapping ErrNoSession when the request has no session.
	CurrentSession(r *http.Request) (*User, error)

	// InitiateLogin starts the login flow, usually by redirecting.
	InitiateLogin(w http.ResponseWriter, r *http.Request)

	// TerminateSession ends the current session.
	TerminateSession(w http.ResponseWriter, r *http.Request) error
}
