package token

import (
	"context"
	"time"
)

// Token is a cached platform access token keyed by credential identity.
type Token struct {
	Key         string
	AccessToken string
	Scope       string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Repository stores access tokens. It is a cache: callers treat errors as misses.
type Repository interface {
	Get(ctx context.Context, key string) (*Token, error)
	Put(ctx context.Context, token Token) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
