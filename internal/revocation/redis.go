package revocation

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mzhdanov/bugtrack/internal/token"
)

const keyPrefix = "revoked:"

// RedisRegistry shares revocations between processes. Keys carry a TTL equal
// to the remaining token lifetime, so entries expire together with the token.
type RedisRegistry struct {
	Client *redis.Client
	Codec  *token.Codec
}

func NewRedisRegistry(client *redis.Client, codec *token.Codec) *RedisRegistry {
	return &RedisRegistry{Client: client, Codec: codec}
}

func (r *RedisRegistry) ttl(raw string) time.Duration {
	claims, err := r.Codec.Verify(raw)
	if err != nil {
		// Unverifiable tokens still get blocked for a full lifetime.
		return r.Codec.TTL
	}
	remaining := time.Until(time.Unix(claims.ExpiresAt, 0))
	if remaining <= 0 {
		return time.Minute
	}
	return remaining
}

func (r *RedisRegistry) Revoke(ctx context.Context, raw string) error {
	return r.Client.Set(ctx, keyPrefix+raw, 1, r.ttl(raw)).Err()
}

func (r *RedisRegistry) IsRevoked(ctx context.Context, raw string) (bool, error) {
	n, err := r.Client.Exists(ctx, keyPrefix+raw).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRegistry) Clear(ctx context.Context) error {
	iter := r.Client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
