package oauth2

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"
	"github.com/navanexis/site/internal/authn"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

type Provider struct {
	ID    string
	Label string
	Icon  string
}

type Handler struct {
	mux                *http.ServeMux
	sessionStore       sessions.Store
	sessionName        string
	siteName           string
	providers          []Provider
	prefix             string
	postLoginRedirect  string
	postLogoutRedirect string
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(sessionStore sessions.Store, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:                http.NewServeMux(),
		sessionStore:       sessionStore,
		sessionName:        opts.SessionName,
		siteName:           opts.SiteName,
		providers:          opts.Providers,
		prefix:             opts.Prefix,
		postLoginRedirect:  opts.PostLoginRedirect,
		postLogoutRedirect: opts.PostLogoutRedirect,
	}

	h.mux.HandleFunc(fmt.Sprintf("GET %s/login", h.prefix), h.getLoginPage)
	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}", h.prefix), withContextProvider(http.HandlerFunc(h.handleProvider)))
	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}/callback", h.prefix), withContextProvider(http.HandlerFunc(h.handleProviderCallback)))
	h.mux.HandleFunc(fmt.Sprintf("GET %s/logout", h.prefix), h.handleLogout)
	h.mux.Handle(fmt.Sprintf("GET %s/providers/{provider}/logout", h.prefix), withContextProvider(http.HandlerFunc(h.handleProviderLogout)))

	return h
}

func (h *Handler) Providers() []Provider {
	return h.providers
}

func (h *Handler) LoginURL() string {
	return fmt.Sprintf("%s/login", h.prefix)
}

// InitiateLogin redirects the client to the provider when only one is
// configured, or to the provider list otherwise.
func (h *Handler) InitiateLogin(w http.ResponseWriter, r *http.Request) {
	target := h.LoginURL()
	if len(h.providers) == 1 {
		target = fmt.Sprintf("%s/providers/%s", h.prefix, h.providers[0].ID)
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// TerminateSession clears the user session and the provider session kept
// by gothic. A request without session is not an error.
func (h *Handler) TerminateSession(w http.ResponseWriter, r *http.Request) error {
	if err := h.clearSession(w, r); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return errors.WithStack(err)
	}

	if err := gothic.Logout(w, r); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (h *Handler) Authenticator(authoritative bool) authn.Authenticator {
	return authn.AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (authn.User, error) {
		user, err := h.retrieveSessionUser(r)
		if err != nil {
			if !authoritative {
				return nil, nil
			}

			if errors.Is(err, ErrSessionNotFound) {
				slog.DebugContext(r.Context(), "no user session, redirecting to login")
			} else {
				slog.ErrorContext(r.Context(), "could not retrieve user from session", log.Error(errors.WithStack(err)))
			}

			http.Redirect(w, r, h.LoginURL(), http.StatusTemporaryRedirect)

			return nil, errors.WithStack(authn.ErrCancel)
		}

		return user, nil
	})
}

var _ http.Handler = &Handler{}

// gothic looks the provider name up with this exact untyped key.
const gothicProviderKey = "provider"

func withContextProvider(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		provider := r.PathValue("provider")
		//nolint:staticcheck
		r = r.WithContext(context.WithValue(r.Context(), gothicProviderKey, provider))
		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
