// Package platform wires the token store, token provider and API client from
// configuration. Every command that talks to the commerce platform starts here.
package platform

import (
	"context"
	"fmt"
	"log"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/config"
	"storefront-bff/internal/repository/token"
)

type Platform struct {
	Client *commercetools.Client
	Tokens *commercetools.TokenProvider
	Store  token.Repository

	closeStore func()
}

func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*Platform, error) {
	store, closeStore, err := token.Open(ctx, token.Options{
		Backend:  cfg.TokenStore,
		RedisURL: cfg.RedisURL,
		DBDSN:    cfg.DBConnString,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	httpClient := commercetools.NewHTTPClient(cfg.HTTPTimeout)
	tokens := commercetools.NewTokenProvider(commercetools.Credentials{
		AuthURL:      cfg.CTAuthURL,
		ClientID:     cfg.CTClientID,
		ClientSecret: cfg.CTClientSecret,
		Scope:        cfg.CTScopes,
	}, store, httpClient, logger)
	client := commercetools.NewClient(cfg.CTAPIURL, cfg.CTProjectKey, tokens, httpClient, logger)

	logger.Printf("platform: ready project=%s token_store=%s", cfg.CTProjectKey, cfg.TokenStore)
	return &Platform{Client: client, Tokens: tokens, Store: store, closeStore: closeStore}, nil
}

// Pinger returns the token store when it can report reachability.
func (p *Platform) Pinger() token.Pinger {
	if pinger, ok := p.Store.(token.Pinger); ok {
		return pinger
	}
	return nil
}

func (p *Platform) Close() {
	if p.closeStore != nil {
		p.closeStore()
	}
}
