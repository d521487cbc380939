package auth

import (
	"context"
	"sync"
	"time"
)

// TokenRevoker is the revocation list consulted on refresh and fed by
// logout. Entries are keyed by the token's jti claim and live only as
// long as the token itself would have.
type TokenRevoker interface {
	// Revoke marks the token id as revoked for the given TTL.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether the token id is on the revocation list.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// MemoryRevoker is an in-process TokenRevoker for single-node
// deployments and tests. Production multi-node deployments configure
// the redis-backed list instead.
type MemoryRevoker struct {
	mu      sync.Mutex
	entries map[string]time.Time // tokenID -> expiry
}

// NewMemoryRevoker creates an empty in-process revocation list.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{entries: make(map[string]time.Time)}
}

// Revoke implements TokenRevoker.Revoke.
func (r *MemoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[tokenID] = time.Now().Add(ttl)
	return nil
}

// IsRevoked implements TokenRevoker.IsRevoked. Expired entries are
// pruned lazily on lookup.
func (r *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expiry, ok := r.entries[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(r.entries, tokenID)
		return false, nil
	}
	return true, nil
}
