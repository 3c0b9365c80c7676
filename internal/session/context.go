package session

import (
	"context"

	"example.com/notely-web/internal/account"
)

type ctxKey struct{}

func WithUser(ctx context.Context, u account.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// CurrentUser returns the user attached by the session middleware.
func CurrentUser(ctx context.Context) (account.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(account.User)
	return u, ok
}
