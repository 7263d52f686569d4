package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"cognihub/internal/domain" // Visibility tags for cache invalidation

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache key builders. Resource listings are cached per network tier so an
// upload only invalidates the tiers that can see it; PUBLIC touches both.
func ResourceListKey(network string) string {
	return "resources:network:" + network // Per-network catalogue cache key
}

// ProfileKey returns the cache key for a user's profile
func ProfileKey(userID string) string {
	return "profile:user:" + userID // Per-user profile cache key
}

// LeaderboardKey is the cache key for the points leaderboard
const LeaderboardKey = "leaderboard:points"

// InvalidateResourceLists drops the catalogue caches a visibility tag can
// appear in. EDU and GENERAL map to their own tier; PUBLIC maps to both.
func InvalidateResourceLists(ctx context.Context, rdb *redis.Client, visibility string) {
	if visibility == domain.VisibilityPublic {
		_ = DeleteCache(ctx, rdb, ResourceListKey(domain.NetworkEDU))     // Public resources appear on EDU
		_ = DeleteCache(ctx, rdb, ResourceListKey(domain.NetworkGeneral)) // ...and on GENERAL
		return
	}
	_ = DeleteCache(ctx, rdb, ResourceListKey(visibility)) // Tier-local resource
}

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}
