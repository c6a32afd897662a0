// Package auth verifies bearer tokens issued by the external identity
// service and guards reader and admin routes.
package auth

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const ctxUser ctxKey = "user"

// User is the authenticated caller.
type User struct {
	ID    uuid.UUID
	Admin bool
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxUser, u)
}

// UserFromContext returns the user stored by the middleware.
func UserFromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxUser).(User)
	return u, ok
}
