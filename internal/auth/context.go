package auth

import (
	"context"

	"assetcore/internal/models"
)

type ctxKey string

const accountKey ctxKey = "currentAccount"

// WithAccount stores the authenticated account for the request lifetime.
func WithAccount(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, accountKey, a)
}

// CurrentAccount returns the authenticated account, or nil outside the
// Authenticate middleware.
func CurrentAccount(ctx context.Context) *models.Account {
	if a, ok := ctx.Value(accountKey).(*models.Account); ok {
		return a
	}
	return nil
}
