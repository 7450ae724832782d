package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenRevocationRepository records session tokens revoked before expiry.
type TokenRevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenRevocationRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenRevocationRepository returns a Redis-backed revocation list.
func NewTokenRevocationRepository(client *redis.Client) TokenRevocationRepository {
	return &tokenRevocationRepository{client: client, now: time.Now}
}

// Revoke flags tokenID until its natural expiry; expired tokens need no entry.
func (r *tokenRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token id required")
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

func (r *tokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
