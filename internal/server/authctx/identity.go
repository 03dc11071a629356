// Package authctx carries the authenticated caller through a request context.
package authctx

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/services"
)

type identityKey struct{}

// WithIdentity stores the authenticated identity in ctx.
func WithIdentity(ctx context.Context, id *services.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity, if any.
func IdentityFromContext(ctx context.Context) (*services.Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	id, ok := ctx.Value(identityKey{}).(*services.Identity)
	return id, ok && id != nil && id.User != nil
}
