package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/identity-admin/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// UserCache is a best-effort read-through cache for user lookups by id.
// Redis failures degrade to cache misses; the store of record stays MongoDB,
// so a broken cache must never fail a request.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewUserCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl, logger: logger}
}

func userKey(id string) string {
	return "identity:user:" + id
}

func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		}
		return nil, false
	}

	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		// Corrupt entry: drop it and treat as a miss.
		c.client.Del(ctx, userKey(id))
		return nil, false
	}
	return &u, true
}

// Set stores the user under its id. The password hash is excluded by its
// json tag; credential checks always read the store of record.
func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, userKey(user.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
}

func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, userKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("user_id", id).Msg("user cache invalidation failed")
	}
}
