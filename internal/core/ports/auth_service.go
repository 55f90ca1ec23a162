package ports

import "context"

// TokenPair is the result of a successful credential exchange.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService issues and refreshes access tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
