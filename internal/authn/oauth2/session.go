package oauth2

import (
	"log/slog"
	"net/http"

	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

const sessionKeyUser = "user"

var ErrSessionNotFound = errors.New("session not found")

// SessionUser returns the user stored in the request's session.
// It returns ErrSessionNotFound when no user is logged in, and any other
// error when the session cookie could not be decoded.
func (h *Handler) SessionUser(r *http.Request) (*User, error) {
	return h.retrieveSessionUser(r)
}

func (h *Handler) retrieveSessionUser(r *http.Request) (*User, error) {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode session")
	}

	raw, exists := sess.Values[sessionKeyUser]
	if !exists || raw == nil {
		return nil, errors.WithStack(ErrSessionNotFound)
	}

	user, ok := raw.(*User)
	if !ok {
		return nil, errors.Errorf("unexpected session user type '%T'", raw)
	}

	return user, nil
}

// StoreSessionUser attaches the user to the session and saves it.
func (h *Handler) StoreSessionUser(w http.ResponseWriter, r *http.Request, user *User) error {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		// A fresh session is returned along with the decoding error
		slog.WarnContext(r.Context(), "replacing unreadable session", log.Error(errors.WithStack(err)))
	}

	sess.Values[sessionKeyUser] = user

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := h.sessionStore.Get(r, h.sessionName)
	if err != nil {
		slog.DebugContext(r.Context(), "clearing unreadable session", log.Error(errors.WithStack(err)))
	}

	if sess.IsNew {
		return errors.WithStack(ErrSessionNotFound)
	}

	delete(sess.Values, sessionKeyUser)
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
