package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"storefront-bff/internal/domain"
)

const defaultKeyPrefix = "storefront:token"

type redisRepo struct {
	client    *redis.Client
	keyPrefix string
	now       func() time.Time
}

// NewRedis stores tokens as JSON values that expire together with the token.
func NewRedis(client *redis.Client, keyPrefix string) Repository {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &redisRepo{client: client, keyPrefix: keyPrefix, now: time.Now}
}

func (r *redisRepo) key(k string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, k)
}

func (r *redisRepo) Get(ctx context.Context, key string) (*Token, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var out Token
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &out, nil
}

func (r *redisRepo) Put(ctx context.Context, token Token) error {
	ttl := token.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("token already expired")
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = r.now().UTC()
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := r.client.Set(ctx, r.key(token.Key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, key string) error {
	n, err := r.client.Del(ctx, r.key(key)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
