package ports

import (
	"context"
	"time"
)

// TokenStore persists opaque refresh tokens with expiry.
type TokenStore interface {
	SaveRefresh(ctx context.Context, token string, userID int64, ttl time.Duration) error
	// ResolveRefresh returns the user id a live refresh token was issued
	// to, or domain.ErrInvalidToken for unknown or expired tokens.
	ResolveRefresh(ctx context.Context, token string) (int64, error)
	RevokeRefresh(ctx context.Context, token string) error
}
