package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// SessionRevocations remembers logged-out session token IDs until the
// tokens would have expired anyway.
type SessionRevocations struct {
	client *redisv9.Client
}

func NewSessionRevocations(client *redisv9.Client) *SessionRevocations {
	return &SessionRevocations{client: client}
}

func (c *SessionRevocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, c.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis set revocation failed: %w", err)
	}
	return nil
}

func (c *SessionRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := c.client.Exists(ctx, c.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check revocation failed: %w", err)
	}
	return exists > 0, nil
}

func (c *SessionRevocations) key(tokenID string) string {
	return fmt.Sprintf("session:revoked:%s", tokenID)
}
