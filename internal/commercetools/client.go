package commercetools

import (
	"bytes"
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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"storefront-bff/internal/domain"
)

// TokenSource supplies bearer tokens for API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type invalidator interface {
	Invalidate(ctx context.Context)
}

// NewHTTPClient returns a client whose outbound requests carry trace context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Client talks to one project of the commerce API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *log.Logger
}

func NewClient(apiURL, projectKey string, tokens TokenSource, httpClient *http.Client, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(apiURL, "/") + "/" + projectKey,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Get decodes the resource at path into out. Every non-2xx status is an *domain.APIError.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Find is Get that reports a 404 as (false, nil).
func (c *Client) Find(ctx context.Context, path string, query url.Values, out interface{}) (bool, error) {
	err := c.do(ctx, http.MethodGet, path, query, nil, out)
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) Post(ctx context.Context, path string, query url.Values, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, query, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, out)
}

func (c *Client) url(path string, query url.Values) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.logger.Printf("ct: %s %s status=%d duration=%s", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			if inv, ok := c.tokens.(invalidator); ok {
				inv.Invalidate(ctx)
			}
		}
		return &domain.APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
