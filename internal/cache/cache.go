package cache

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache stores JSON-encoded values in Redis with a fixed TTL
type Cache struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Lifetime of every cached value
}

// New creates a Cache over an existing Redis client
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// WeeklyKey is the cache key for a user's report of the week starting on weekStart.
// The key names the window, not the offset, so it stays valid across Mondays.
func WeeklyKey(userID uint, weekStart time.Time) string {
	return "waste:weekly:user:" + strconv.FormatUint(uint64(userID), 10) + ":" + weekStart.Format(time.DateOnly)
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal(val, dest) // Unmarshal JSON into dest
}

// Set stores value in Redis under key
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err() // Set value in Redis with TTL
}

// Delete deletes keys from Redis
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}
