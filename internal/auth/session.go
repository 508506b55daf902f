package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revocationPrefix = "techos:revoked:"

// SessionStore tracks revoked token ids in Redis. Tokens are stateless JWTs;
// revocation is the only server-side session state. Every entry expires with
// the token itself so the set never grows past the live token population.
//
// Redis being unavailable degrades gracefully: Revoke reports the error but
// callers treat local logout as already done, and IsRevoked fails open so
// signature and expiry checks remain the authority.
type SessionStore struct {
	client *redis.Client
	log    *zap.Logger
}

// NewSessionStore wraps an optional Redis client. A nil client disables
// revocation tracking entirely.
func NewSessionStore(client *redis.Client, log *zap.Logger) *SessionStore {
	return &SessionStore{client: client, log: log}
}

// Revoke marks a token id as logged out until the token would expire anyway.
func (s *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s.client == nil || tokenID == "" {
		return nil
	}
	if ttl <= 0 {
		return nil // already expired, nothing to track
	}
	if err := s.client.Set(ctx, revocationPrefix+tokenID, "1", ttl).Err(); err != nil {
		s.log.Warn("Failed to record token revocation", zap.Error(err))
		return err
	}
	return nil
}

// IsRevoked reports whether the token id was logged out.
func (s *SessionStore) IsRevoked(ctx context.Context, tokenID string) bool {
	if s.client == nil || tokenID == "" {
		return false
	}
	n, err := s.client.Exists(ctx, revocationPrefix+tokenID).Result()
	if err != nil {
		s.log.Warn("Revocation lookup failed, treating token as live", zap.Error(err))
		return false
	}
	return n > 0
}
