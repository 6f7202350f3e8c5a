package cache

import (
	"context"
	"encoding/json"
	"time"

	"gehna-backend/internal/database"
)

const (
	ProductCacheTTL = 10 * time.Minute
	StatsCacheTTL   = time.Minute
)

const (
	ProductListKey = "products:first_page"
	StatsKey       = "admin:stats"
)

// GetJSON fills dest from the cached value under key. Returns false on a
// miss, a decode failure or when Redis is unavailable — callers always fall
// through to Mongo.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if database.Redis == nil {
		return false
	}
	data, err := database.Redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores value under key with the given TTL. Best effort: cache
// write failures are silently ignored.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if database.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, key, data, ttl)
}

// InvalidateProducts drops the cached product listing and any cached product
// detail. Called on every catalog write (create/update/delete/review).
func InvalidateProducts(ctx context.Context, productIDs ...string) {
	if database.Redis == nil {
		return
	}
	keys := []string{ProductListKey}
	for _, id := range productIDs {
		keys = append(keys, "product:"+id)
	}
	database.Redis.Del(ctx, keys...)
}

// InvalidateStats drops the cached admin dashboard numbers. Called after
// order creation so revenue doesn't lag a full TTL behind.
func InvalidateStats(ctx context.Context) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, StatsKey)
}

func ProductKey(id string) string {
	return "product:" + id
}
