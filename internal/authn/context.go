package authn

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNoContextUser = errors.New("no user in context")

type contextKey string

const contextKeyUser contextKey = "authnUser"

// ContextUser returns the user attached to the context by the middleware.
func ContextUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(contextKeyUser).(User)
	if !ok || user == nil {
		return nil, errors.WithStack(ErrNoContextUser)
	}

	return user, nil
}

func WithContextUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}
