package setup

import (
	"context"
	"net/http"
	"time"

	"github.com/navanexis/site/internal/authn"
	"github.com/navanexis/site/internal/authn/oauth2"
	"github.com/navanexis/site/internal/authz"
	"github.com/navanexis/site/internal/shell"
	"github.com/navanexis/site/internal/store"
	"github.com/pkg/errors"
)

type contextKey string

const contextKeyShellUser contextKey = "shellUser"

// connectionRefreshInterval is the minimum delay between two writes of an
// unchanged user's connection time.
const connectionRefreshInterval = 5 * time.Minute

// Identity resolves shell sessions from the OAuth2 session cookie, keeping
// the user store and the user's role in sync on each lookup.
type Identity struct {
	oauth2 *oauth2.Handler
	store  *store.Store
	policy *authz.Policy
}

// CurrentSession implements shell.Identity.
func (i *Identity) CurrentSession(r *http.Request) (*shell.User, error) {
	if user, ok := r.Context().Value(contextKeyShellUser).(*shell.User); ok {
		return user, nil
	}

	sessionUser, err := i.oauth2.SessionUser(r)
	if err != nil {
		if errors.Is(err, oauth2.ErrSessionNotFound) {
			return nil, errors.WithStack(shell.ErrNoSession)
		}

		return nil, errors.WithStack(err)
	}

	storeUser, err := i.sync(r.Context(), sessionUser)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return newShellUser(sessionUser, storeUser), nil
}

// InitiateLogin implements shell.Identity.
func (i *Identity) InitiateLogin(w http.ResponseWriter, r *http.Request) {
	i.oauth2.InitiateLogin(w, r)
}

// TerminateSession implements shell.Identity.
func (i *Identity) TerminateSession(w http.ResponseWriter, r *http.Request) error {
	return errors.WithStack(i.oauth2.TerminateSession(w, r))
}

// OnAuthenticated attaches the user's role and shell user to the request
// context once the authentication chain has identified the user.
func (i *Identity) OnAuthenticated(r *http.Request, user authn.User) (*http.Request, error) {
	oauth2User, ok := user.(*oauth2.User)
	if !ok {
		return nil, errors.Errorf("unexpected user type '%T'", user)
	}

	ctx := r.Context()

	storeUser, err := i.sync(ctx, oauth2User)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ctx = authz.WithContextRole(ctx, storeUser.Role)
	ctx = context.WithValue(ctx, contextKeyShellUser, newShellUser(oauth2User, storeUser))

	return r.WithContext(ctx), nil
}

func (i *Identity) sync(ctx context.Context, user *oauth2.User) (*store.User, error) {
	role, err := i.policy.Role(authz.Subject{
		Subject:  user.Subject,
		Provider: user.Provider,
		Nickname: user.Nickname,
		Email:    user.Email,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	storeUser, err := i.store.FindOrCreateUser(ctx, user.Subject, user.Provider)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	unchanged := storeUser.Nickname == user.Nickname &&
		storeUser.Email == user.Email &&
		storeUser.Role == role &&
		time.Since(storeUser.ConnectedAt) < connectionRefreshInterval

	if unchanged {
		return storeUser, nil
	}

	storeUser.Nickname = user.Nickname
	storeUser.Email = user.Email
	storeUser.Role = role
	storeUser.ConnectedAt = time.Now().UTC()
	storeUser.UpdatedAt = time.Time{}

	storeUser, err = i.store.UpdateUser(ctx, storeUser)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return storeUser, nil
}

func newShellUser(user *oauth2.User, storeUser *store.User) *shell.User {
	role := shell.RoleMember
	if storeUser.IsAdmin() {
		role = shell.RoleAdmin
	}

	return &shell.User{
		DisplayName: user.DisplayName(),
		Email:       user.Email,
		Role:        role,
	}
}

func NewIdentity(oauth2 *oauth2.Handler, store *store.Store, policy *authz.Policy) *Identity {
	return &Identity{
		oauth2: oauth2,
		store:  store,
		policy: policy,
	}
}

var _ shell.Identity = &Identity{}
