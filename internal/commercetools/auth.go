package commercetools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"storefront-bff/internal/domain"
	"storefront-bff/internal/repository/token"
)

const (
	// expiryMargin keeps a token from being handed out moments before it lapses.
	expiryMargin     = 5 * time.Second
	defaultExpiresIn = 300
)

// Credentials identify an API client for the client-credentials grant.
type Credentials struct {
	AuthURL      string
	ClientID     string
	ClientSecret string
	Scope        string
}

// TokenProvider hands out bearer tokens, refreshing them through the
// client-credentials grant. Concurrent refreshes for one credential share a
// single grant request.
type TokenProvider struct {
	creds      Credentials
	store      token.Repository
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
	group      singleflight.Group
}

type TokenOption func(*TokenProvider)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TokenOption {
	return func(p *TokenProvider) { p.now = now }
}

func NewTokenProvider(creds Credentials, store token.Repository, httpClient *http.Client, logger *log.Logger, opts ...TokenOption) *TokenProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	p := &TokenProvider{
		creds:      creds,
		store:      store,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *TokenProvider) cacheKey() string {
	return p.creds.ClientID + "|" + p.creds.Scope
}

// Token returns a bearer token valid for at least the expiry margin.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	key := p.cacheKey()
	if tok, ok := p.cached(ctx, key); ok {
		return tok, nil
	}

	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		if tok, ok := p.cached(ctx, key); ok {
			return tok, nil
		}
		// The grant outlives a caller that gives up; others may be waiting on it.
		return p.grant(context.WithoutCancel(ctx), key)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call performs a fresh grant.
func (p *TokenProvider) Invalidate(ctx context.Context) {
	if err := p.store.Delete(ctx, p.cacheKey()); err != nil && !errors.Is(err, domain.ErrNotFound) {
		p.logger.Printf("auth: invalidate token: %v", err)
	}
}

func (p *TokenProvider) cached(ctx context.Context, key string) (string, bool) {
	tok, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			p.logger.Printf("auth: token store read failed, treating as miss: %v", err)
		}
		return "", false
	}
	if tok.AccessToken == "" || !tok.ExpiresAt.After(p.now().Add(expiryMargin)) {
		return "", false
	}
	return tok.AccessToken, true
}

type grantResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
	TokenType   string `json:"token_type"`
}

func (p *TokenProvider) grant(ctx context.Context, key string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	if p.creds.Scope != "" {
		form.Set("scope", p.creds.Scope)
	}

	endpoint := strings.TrimRight(p.creds.AuthURL, "/") + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domain.AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.creds.ClientID, p.creds.ClientSecret)

	issuedAt := p.now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &domain.AuthError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.AuthError{Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.AuthError{Status: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(body)))}
	}

	var out grantResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &domain.AuthError{Status: resp.StatusCode, Err: fmt.Errorf("decode token response: %w", err)}
	}
	if out.AccessToken == "" {
		return "", &domain.AuthError{Status: resp.StatusCode, Err: errors.New("empty access_token")}
	}
	expiresIn := out.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	expiresAt := issuedAt.Add(time.Duration(expiresIn) * time.Second)
	if err := p.store.Put(ctx, token.Token{
		Key:         key,
		AccessToken: out.AccessToken,
		Scope:       p.creds.Scope,
		ExpiresAt:   expiresAt,
	}); err != nil {
		p.logger.Printf("auth: token store write failed: %v", err)
	}
	p.logger.Printf("auth: issued token client=%s expires_in=%ds", p.creds.ClientID, expiresIn)
	return out.AccessToken, nil
}
