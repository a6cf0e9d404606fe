package middleware

import (
	"context"

	"github.com/baharkarakas/inkwell/internal/models"
)

type userKey struct{}

func WithUser(ctx context.Context, u models.PublicUser) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// FromCtx returns the authenticated user set by Auth.
func FromCtx(ctx context.Context) (models.PublicUser, bool) {
	u, ok := ctx.Value(userKey{}).(models.PublicUser)
	return u, ok
}
