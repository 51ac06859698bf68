// Package tokens is the per-process durable store for the session's token
// pair. Tokens are deliberately not part of the shared snapshot: the
// companion device never sees them.
package tokens

import "context"

// Well-known keys.
const (
	KeyAccess  = "access_token"
	KeyRefresh = "refresh_token"
)

// Repository is a small durable key-value store. Get returns (nil, nil) when
// the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetPair stores both tokens atomically; a crash between the two writes
	// must not leave a mixed pair behind.
	SetPair(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error
}
