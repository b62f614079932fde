package authz

import (
	"context"
)

type contextKey string

const contextKeyRole contextKey = "authzRole"

func WithContextRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, contextKeyRole, role)
}

// ContextRole returns the role attached to the context, or an empty role.
func ContextRole(ctx context.Context) Role {
	role, _ := ctx.Value(contextKeyRole).(Role)
	return role
}
