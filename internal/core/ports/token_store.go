package ports

import "context"

// TokenStore persists the bearer token across restarts.
// Get returns "" with a nil error when no token is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}
