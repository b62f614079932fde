package shell

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrNoSession is returned by an Identity when the request carries no
// session at all, as opposed to a session that could not be read.
var ErrNoSession = errors.New("no session")

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type User struct {
	DisplayName string
	Email       string
	Role        Role
}

// FirstName returns the first word of the user's display name, or "User"
// when the display name is blank.
func (u *User) FirstName() string {
	if u == nil {
		return "User"
	}

	fields := strings.Fields(u.DisplayName)
	if len(fields) == 0 {
		return "User"
	}

	return fields[0]
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type SessionTag int

const (
	SessionLoading SessionTag = iota
	SessionAuthenticated
	SessionAnonymous
)

func (t SessionTag) String() string {
	switch t {
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// SessionState is exactly one of Loading, Authenticated(user) or Anonymous.
type SessionState struct {
	tag   SessionTag
	user  *User
	cause error
}

func Loading() SessionState {
	return SessionState{tag: SessionLoading}
}

func Authenticated(user *User) SessionState {
	return SessionState{tag: SessionAuthenticated, user: user}
}

// Anonymous returns the anonymous state. cause is the lookup error that led
// to it, nil after an explicit logout.
func Anonymous(cause error) SessionState {
	return SessionState{tag: SessionAnonymous, cause: cause}
}

func (s SessionState) Tag() SessionTag {
	return s.tag
}

func (s SessionState) IsLoading() bool {
	return s.tag == SessionLoading
}

func (s SessionState) IsAuthenticated() bool {
	return s.tag == SessionAuthenticated
}

func (s SessionState) IsAnonymous() bool {
	return s.tag == SessionAnonymous
}

// User returns the authenticated user, nil in any other state.
func (s SessionState) User() *User {
	if s.tag != SessionAuthenticated {
		return nil
	}

	return s.user
}

func (s SessionState) Cause() error {
	return s.cause
}

// Unreachable reports whether the state is anonymous because the session
// lookup failed, rather than because there was no session.
func (s SessionState) Unreachable() bool {
	return s.tag == SessionAnonymous && s.cause != nil && !errors.Is(s.cause, ErrNoSession)
}
