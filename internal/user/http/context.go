// Package http provides HTTP handlers and middleware for account sessions.
package http

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/lifekey/lifekey/internal/user/domain"
)

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// WithUser stores the authenticated account owner in the context.
// This is typically called by the session middleware after token validation.
func WithUser(ctx context.Context, user *userDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated account owner from the context.
// Returns (user, true) if present, or (nil, false) if no user was set.
func GetUser(ctx context.Context) (*userDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.User)
	return user, ok
}
