package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront-bff/internal/domain"
)

// DefaultMaxRetries allows three submissions in total.
const DefaultMaxRetries = 2

// Versioned is a resource updated under optimistic concurrency.
type Versioned interface {
	GetID() string
}

// WithVersionRetry submits current through apply. When the platform rejects
// the submission as a version conflict it fetches the latest representation
// and submits the same changes again, at most maxRetries more times. The
// changes applied must be absolute ("set quantity to N"), never deltas.
func WithVersionRetry[T Versioned](
	ctx context.Context,
	current T,
	maxRetries int,
	apply func(ctx context.Context, latest T) (T, error),
	fetchLatest func(ctx context.Context, id string) (T, error),
) (T, error) {
	var zero T
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			latest, err := fetchLatest(ctx, current.GetID())
			if err != nil {
				return zero, fmt.Errorf("refetch %s after conflict: %w", current.GetID(), err)
			}
			current = latest
		}

		updated, err := apply(ctx, current)
		if err == nil {
			return updated, nil
		}
		if !isConflict(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, &domain.CartUpdateExhaustedError{
		CartID:   current.GetID(),
		Attempts: maxRetries + 1,
		Err:      lastErr,
	}
}

func isConflict(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.IsConflict()
}
