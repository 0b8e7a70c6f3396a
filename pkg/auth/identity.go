// Package auth issues and verifies session tokens and hashes passwords.
//
//	issuer, err := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
//	token, _ := issuer.Issue(auth.Identity{ID: c.ID, Email: c.Email, Name: c.Name})
//
//	id, err := issuer.Parse(token)           // in middleware
//	ctx = auth.WithIdentity(r.Context(), id)
//	id, ok := auth.IdentityFrom(ctx)          // in handlers
package auth

import "context"

// Identity is the authenticated customer as seen by handlers.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ctxKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity attached by the auth middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
