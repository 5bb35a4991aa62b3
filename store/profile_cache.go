package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio/api/leetcode"
	"portfolio/api/metrics"
)

const profileKeyPrefix = "leetcode_profile:"

// ProfileCache keeps raw upstream LeetCode profiles in Redis so repeated
// stats requests skip the GraphQL round trip. Aggregates are not cached:
// they depend on the request's "today".
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(rdb *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: rdb, ttl: ttl}
}

func profileKey(username string) string {
	return profileKeyPrefix + strings.ToLower(username)
}

// Get returns nil, nil on a cache miss.
func (c *ProfileCache) Get(ctx context.Context, username string) (*leetcode.Profile, error) {
	val, err := c.client.Get(ctx, profileKey(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get err: %w", err)
	}

	var p leetcode.Profile
	if err := json.Unmarshal(val, &p); err != nil {
		metrics.CacheMisses.Inc()
		return nil, nil
	}
	metrics.CacheHits.Inc()
	return &p, nil
}

func (c *ProfileCache) Set(ctx context.Context, p *leetcode.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed marshal profile: %w", err)
	}
	if err := c.client.Set(ctx, profileKey(p.Username), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed save profile to cache: %w", err)
	}
	return nil
}

func (c *ProfileCache) Invalidate(ctx context.Context, username string) error {
	return c.client.Del(ctx, profileKey(username)).Err()
}
