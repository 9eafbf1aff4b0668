// Package session is the durable client-side storage for credentials and the
// cached profile snapshot. Tokens live under fixed keys and are read fresh by
// the API client on every call.
package session

import "context"

// Fixed storage keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyProfile      = "profile"
)

// Repository is a small key/value store over durable local storage.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
