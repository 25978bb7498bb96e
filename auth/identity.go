// Package auth authenticates the storefront admin and carries the caller identity
// in a signed session cookie.
package auth

import (
	"context"

	"koon7r-storefront/models"
)

// Identity is the authenticated caller
type Identity struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// IsAdmin reports whether the identity holds the admin role. Safe on nil.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

type contextKey struct{}

// WithIdentity stores id in ctx
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity, or nil for anonymous callers
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
