package project

import (
	"context"
	"fmt"
	"net/url"

	"storefront-bff/internal/commercetools"
)

type getter interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
}

type Service struct {
	gw getter
}

func New(gw getter) *Service {
	return &Service{gw: gw}
}

// Get returns the project the client credentials belong to.
func (s *Service) Get(ctx context.Context) (*commercetools.Project, error) {
	var p commercetools.Project
	if err := s.gw.Get(ctx, "", nil, &p); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}
