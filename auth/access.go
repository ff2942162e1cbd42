package auth

import (
	"context"

	"github.com/user/messagely-go/apperror"
)

// Verifier resolves a session token into an Identity.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

type contextKey string

const identityContextKey contextKey = "auth_identity"

// NewContextWithIdentity returns a child of ctx carrying id.
func NewContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the identity stored by the auth middleware.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	return id, ok && id != nil
}

// RequireAuthenticated verifies token and returns the caller's identity.
func RequireAuthenticated(v Verifier, token string) (*Identity, error) {
	id, err := v.Verify(token)
	if err != nil {
		return nil, apperror.NewUnauthorizedError("Unauthorized", err)
	}
	return id, nil
}

// RequireIsUser succeeds only when id names exactly target. The comparison
// is case-sensitive.
func RequireIsUser(id *Identity, target string) error {
	if id == nil || id.Username != target {
		return apperror.NewUnauthorizedError("Unauthorized", nil)
	}
	return nil
}

// MustIdentity returns the request identity or an UnauthorizedError when the
// auth middleware did not run.
func MustIdentity(ctx context.Context) (*Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return nil, apperror.NewUnauthorizedError("Unauthorized", nil)
	}
	return id, nil
}
