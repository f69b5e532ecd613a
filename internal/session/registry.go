package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Registry owns the token -> identity mapping. Tokens are opaque; nothing
// outside this package derives an identity from a token any other way.
type Registry struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRegistry(rdb *redis.Client, ttl time.Duration) *Registry {
	return &Registry{
		rdb: rdb,
		ttl: ttl,
	}
}

// Create mints a fresh token for identityID and records it with the
// registry TTL.
func (r *Registry) Create(ctx context.Context, identityID string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := r.rdb.Set(ctx, keyPrefix+token, identityID, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("session: store token: %w", err)
	}
	return token, nil
}

// Resolve returns the identity id recorded for token, or "" when the token
// is unknown or expired. A known token gets its TTL refreshed so active
// sessions stay alive.
func (r *Registry) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	id, err := r.rdb.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: resolve token: %w", err)
	}
	_ = r.rdb.Expire(ctx, keyPrefix+token, r.ttl).Err()
	return id, nil
}

// Revoke removes the token unconditionally. Unknown tokens are not an error.
func (r *Registry) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return r.rdb.Del(ctx, keyPrefix+token).Err()
}

// 32 bytes = 256 bits of entropy; a collision is not a practical concern.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
