package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs for the derived read-side aggregations. Writes also
// invalidate eagerly; the TTL is the self-heal window for invalidations
// that were lost (e.g. redis was briefly unreachable).
const (
	UserStatsTTL = 600 * time.Second
	RankingsTTL  = 3600 * time.Second
)

func UserStatsKey(userID string) string { return "stats:user:" + userID }

func RankingsKey(metric string, limit int) string {
	return fmt.Sprintf("rankings:%s:%d", metric, limit)
}

// Cache is a thin go-redis wrapper for derived data. It is strictly an
// optimization layer: every method degrades to a miss / no-op when redis
// is unreachable or when rdb is nil (cache disabled).
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache { return &Cache{rdb: rdb} }

// Get unmarshals the cached value into dest and reports a hit. Missing,
// expired, and unreadable entries are all misses, never errors.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("[CACHE] GET %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[CACHE] corrupt entry %s dropped: %v", key, err)
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[CACHE] marshal %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[CACHE] SET %s failed: %v", key, err)
	}
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[CACHE] DEL %v failed: %v", keys, err)
	}
}

// InvalidateByPrefix deletes every key matching pattern (e.g.
// "rankings:*"). Uses SCAN rather than KEYS so a large keyspace never
// blocks the server.
func (c *Cache) InvalidateByPrefix(ctx context.Context, pattern string) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[CACHE] SCAN %s failed: %v", pattern, err)
		return
	}
	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			log.Printf("[CACHE] DEL %s failed: %v", pattern, err)
		}
	}
}
