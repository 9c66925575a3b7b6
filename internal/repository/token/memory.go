package token

import (
	"context"
	"sync"
	"time"

	"storefront-bff/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

// NewMemory returns a process-local token store.
func NewMemory() Repository {
	return &memoryRepo{tokens: make(map[string]Token)}
}

func (r *memoryRepo) Get(_ context.Context, key string) (*Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tok, ok := r.tokens[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tok, nil
}

func (r *memoryRepo) Put(_ context.Context, token Token) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	r.tokens[token.Key] = token
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, key)
	return nil
}
