package token

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"storefront-bff/internal/db"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a token store backend.
type Options struct {
	Backend   string
	RedisURL  string
	KeyPrefix string
	DBDSN     string
}

// Open builds the configured backend. The returned func releases its connections.
func Open(ctx context.Context, opts Options, logger *log.Logger) (Repository, func(), error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(), func() {}, nil
	case BackendRedis:
		redisOpt, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(redisOpt)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedis(client, opts.KeyPrefix), func() { client.Close() }, nil
	case BackendPostgres:
		pool, err := db.Connect(ctx, opts.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to db: %w", err)
		}
		return NewPostgres(pool, logger), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store backend %q", opts.Backend)
	}
}
