package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type ctxKey int

const ctxIdentity ctxKey = iota

// WithIdentity stores the request identity in context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

// IdentityFrom returns the request identity placed by the middleware.
func IdentityFrom(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(ctxIdentity).(Identity); ok && id.UserID != uuid.Nil {
		return id, nil
	}
	return Identity{}, errors.New("identity not in context")
}

// UserID is a shorthand for the authenticated user id.
func UserID(ctx context.Context) (uuid.UUID, error) {
	id, err := IdentityFrom(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return id.UserID, nil
}
