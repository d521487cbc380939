// Package redis provides the redis-backed refresh-token revocation
// list. Each revoked token is stored under its jti claim with a TTL
// equal to the token's remaining lifetime, so entries expire exactly
// when the token itself would have.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parceldesk/parceldesk-api/internal/config"
)

const revokedKeyPrefix = "revoked:"

// RevocationList implements auth.TokenRevoker on redis.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList connects to redis using the given configuration.
func NewRevocationList(cfg config.RedisConfig) *RevocationList {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RevocationList{client: client}
}

// Revoke marks the token id as revoked for the given TTL. A TTL of zero
// or less means the token has already expired and nothing is stored.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id is on the revocation list.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := l.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping verifies the redis connection.
func (l *RevocationList) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (l *RevocationList) Close() error {
	return l.client.Close()
}
