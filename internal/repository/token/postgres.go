package token

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront-bff/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres stores tokens in the access_tokens table so replicas share one grant.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Get(ctx context.Context, key string) (*Token, error) {
	const q = `
SELECT cache_key, access_token, scope, expires_at, created_at
FROM access_tokens
WHERE cache_key = $1
LIMIT 1
`
	var out Token
	if err := r.pool.QueryRow(ctx, q, key).Scan(
		&out.Key,
		&out.AccessToken,
		&out.Scope,
		&out.ExpiresAt,
		&out.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Put(ctx context.Context, token Token) error {
	const q = `
INSERT INTO access_tokens (cache_key, access_token, scope, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cache_key) DO UPDATE
SET access_token = EXCLUDED.access_token,
    scope = EXCLUDED.scope,
    expires_at = EXCLUDED.expires_at,
    created_at = now()
`
	if _, err := r.pool.Exec(ctx, q, token.Key, token.AccessToken, token.Scope, token.ExpiresAt); err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.Printf("token repo: stored key=%s expires_at=%s", token.Key, token.ExpiresAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, key string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM access_tokens WHERE cache_key = $1`, key)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
