package infra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis parses the URL, connects, and fails fast when the server does not
// answer a PING.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// JSONCache stores JSON-encoded values in Redis. Every method is best effort:
// a cache failure is a miss, never an error.
type JSONCache struct {
	rdb *redis.Client
}

func NewJSONCache(rdb *redis.Client) *JSONCache { return &JSONCache{rdb: rdb} }

// Get decodes the cached value into dest and reports whether it was found.
func (c *JSONCache) Get(ctx context.Context, key string, dest interface{}) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *JSONCache) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, b, ttl).Err()
}

func (c *JSONCache) Delete(ctx context.Context, keys ...string) {
	_ = c.rdb.Del(ctx, keys...).Err()
}
