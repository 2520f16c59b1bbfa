package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked refresh-token ids in Redis until their
// natural expiry. Key format: revoked:<jti>
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks jti as unusable. The entry expires with the token itself,
// so the denylist never grows past the set of live refresh tokens.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) key(jti string) string {
	return "revoked:" + jti
}
