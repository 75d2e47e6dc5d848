package ctxutil

import "context"

type identityKey struct{}

// Identity is the verified caller attached by the auth middleware.
type Identity struct {
	Email string
	Token string
	// Role is filled only after a role gate has looked the caller up.
	Role string
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func GetIdentity(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return id
	}
	return nil
}
