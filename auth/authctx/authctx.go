// Package authctx propagates verified token claims through the request
// context under a single unexported key.
package authctx

import (
	"context"

	"github.com/conduit-labs/conduit/auth/jwt"
)

type contextKey struct{}

var claimsKey = contextKey{}

// Set stores verified claims in the context.
func Set(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get retrieves verified claims from the context. The second return is
// false for anonymous requests.
func Get(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// MustGet retrieves claims or panics. Use only behind required-auth
// middleware, which guarantees claims exist.
func MustGet(ctx context.Context) *jwt.Claims {
	claims, ok := Get(ctx)
	if !ok {
		panic("authctx: no claims in context")
	}
	return claims
}
