// Package rdx caches rendered public API responses in Redis. Caching is
// best effort throughout: a missing or unreachable Redis never fails a
// request, it only loses the cache.
package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// ResponseTTL bounds how long a cached public response may be served
// before the next request goes back to the store. Mutations invalidate
// earlier than this via mq events.
const ResponseTTL = 2 * time.Minute

// Connect initializes the Redis client. The connection is optional; a
// failed ping just disables caching.
func Connect() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, response caching disabled: %v", addr, err)
		return
	}
	Conn = client
	log.Printf("✅ Connected to Redis (%s)", addr)
}

// CacheKey builds the canonical key for a rendered response:
// cache:<entity>:<request-shape>.
func CacheKey(entity, shape string) string {
	return "cache:" + entity + ":" + shape
}

func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if Conn == nil {
		return nil, false
	}
	payload, err := Conn.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func SetCached(ctx context.Context, key string, payload []byte) {
	if Conn == nil {
		return
	}
	if err := Conn.Set(ctx, key, payload, ResponseTTL).Err(); err != nil {
		log.Printf("Redis Set error for key %s: %v", key, err)
	}
}

// Invalidate drops every cached response for an entity type. Called by
// the mq worker after any successful admin mutation of that type.
func Invalidate(ctx context.Context, entity string) {
	if Conn == nil {
		return
	}
	keys, err := Conn.Keys(ctx, "cache:"+entity+":*").Result()
	if err != nil {
		log.Printf("Redis scan error invalidating %s: %v", entity, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := Conn.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Redis Del error invalidating %s: %v", entity, err)
	}
}
