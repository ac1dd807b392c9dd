package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const sessionKeyPrefix = "session:"

// RedisSessionCache fronts the sessions table with Redis so the
// per-request liveness check usually avoids a database read. The key
// lives exactly as long as the token; revocation drops it immediately.
// The session row stays the source of truth: a cache miss falls back to
// the database, so a flushed Redis only costs latency, never correctness.
type RedisSessionCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisSessionCache(client *redis.Client, log *logrus.Logger) *RedisSessionCache {
	return &RedisSessionCache{
		client: client,
		log:    log,
	}
}

// Store marks tokenID as live for ttl.
func (c *RedisSessionCache) Store(ctx context.Context, tokenID string, ttl time.Duration) error {
	return c.client.Set(ctx, sessionKeyPrefix+tokenID, "valid", ttl).Err()
}

// Exists reports whether tokenID is known live.
func (c *RedisSessionCache) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, sessionKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Drop forgets tokenID. Dropping an unknown token is a no-op.
func (c *RedisSessionCache) Drop(ctx context.Context, tokenID string) error {
	return c.client.Del(ctx, sessionKeyPrefix+tokenID).Err()
}
