package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyReserver claims business keys in Redis with SET NX so concurrent
// processes minting identifiers skip values already handed out.
type KeyReserver struct {
	rdb *redis.Client
}

func NewKeyReserver(rdb *redis.Client) *KeyReserver { return &KeyReserver{rdb: rdb} }

func (r *KeyReserver) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.rdb.SetNX(ctx, key, 1, ttl).Result()
}
