package oauth2

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) handleProvider(w http.ResponseWriter, r *http.Request) {
	if _, err := gothic.CompleteUserAuth(w, r); err == nil {
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
	} else {
		gothic.BeginAuthHandler(w, r)
	}
}

func (h *Handler) handleProviderCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		slog.ErrorContext(ctx, "could not complete user auth", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
		return
	}

	slog.DebugContext(ctx, "authenticated user", slog.String("provider", gothUser.Provider), slog.String("subject", gothUser.UserID))

	user, err := newUser(gothUser)
	if err != nil {
		slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
		return
	}

	if err := h.StoreSessionUser(w, r, user); err != nil {
		slog.ErrorContext(ctx, "could not store session user", log.Error(errors.WithStack(err)))
		http.Redirect(w, r, fmt.Sprintf("%s/logout", h.prefix), http.StatusTemporaryRedirect)
		return
	}

	http.Redirect(w, r, h.postLoginRedirect, http.StatusSeeOther)
}

func newUser(gothUser goth.User) (*User, error) {
	user := &User{
		Subject:  gothUser.UserID,
		Provider: gothUser.Provider,

		Name:     gothUser.Name,
		Nickname: gothUser.NickName,
		Email:    gothUser.Email,

		AccessToken: gothUser.AccessToken,
		IDToken:     gothUser.IDToken,
	}

	if user.Email == "" {
		return nil, errors.New("user email missing")
	}

	if user.Provider == "" {
		return nil, errors.New("user provider missing")
	}

	if user.Name == "" {
		user.Name = strings.TrimSpace(gothUser.FirstName + " " + gothUser.LastName)
	}

	if rawPreferredUsername, exists := gothUser.RawData["preferred_username"]; exists {
		if preferredUsername, ok := rawPreferredUsername.(string); ok && preferredUsername != "" {
			user.Nickname = preferredUsername
		}
	}

	if user.Nickname == "" {
		user.Nickname = user.Email
	}

	return user, nil
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.retrieveSessionUser(r)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		slog.WarnContext(ctx, "could not retrieve session user", log.Error(errors.WithStack(err)))
	}

	if err := h.clearSession(w, r); err != nil && !errors.Is(err, ErrSessionNotFound) {
		slog.ErrorContext(ctx, "could not clear session", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if user == nil {
		http.Redirect(w, r, h.postLogoutRedirect, http.StatusTemporaryRedirect)
		return
	}

	redirectURL := fmt.Sprintf("%s/providers/%s/logout", h.prefix, user.UserProvider())

	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}

func (h *Handler) handleProviderLogout(w http.ResponseWriter, r *http.Request) {
	if err := gothic.Logout(w, r); err != nil {
		slog.ErrorContext(r.Context(), "could not terminate provider session", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.postLogoutRedirect, http.StatusTemporaryRedirect)
}
