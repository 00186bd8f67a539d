package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel the rendering frontend subscribes to.
const Channel = "propflow:revalidate"

// RedisAnnouncer publishes stale-path announcements to a Redis channel.
type RedisAnnouncer struct {
	rdb *redis.Client
}

// NewRedisAnnouncer creates an announcer from a Redis URL.
func NewRedisAnnouncer(redisURL string) (*RedisAnnouncer, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("revalidate: parse redis URL: %w", err)
	}
	return &RedisAnnouncer{rdb: redis.NewClient(opts)}, nil
}

// Invalidate publishes the path set as a JSON array. Publish failures are
// logged and swallowed; the mutation already succeeded.
func (a *RedisAnnouncer) Invalidate(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}

	payload, err := json.Marshal(paths)
	if err != nil {
		log.Printf("revalidate: marshal paths: %v", err)
		return
	}

	if err := a.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Printf("revalidate: publish to %s: %v", Channel, err)
	}
}

// Close releases the underlying Redis client.
func (a *RedisAnnouncer) Close() error {
	return a.rdb.Close()
}
