package commercetools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-bff/internal/domain"
	"storefront-bff/internal/repository/token"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type grantServer struct {
	*httptest.Server
	grants    atomic.Int32
	expiresIn int
	status    int
	delay     time.Duration
}

func newGrantServer(t *testing.T) *grantServer {
	t.Helper()
	gs := &grantServer{expiresIn: 3600, status: http.StatusOK}
	gs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"invalid_client"}`)
			return
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if gs.delay > 0 {
			time.Sleep(gs.delay)
		}
		n := gs.grants.Add(1)
		if gs.status != http.StatusOK {
			w.WriteHeader(gs.status)
			fmt.Fprint(w, `{"error":"rejected"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if gs.expiresIn == 0 {
			fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"Bearer","scope":%q}`, n, r.PostForm.Get("scope"))
			return
		}
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"Bearer","expires_in":%d,"scope":%q}`, n, gs.expiresIn, r.PostForm.Get("scope"))
	}))
	t.Cleanup(gs.Close)
	return gs
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newProvider(gs *grantServer, store token.Repository, clock *fakeClock) *TokenProvider {
	return NewTokenProvider(Credentials{
		AuthURL:      gs.URL + "/",
		ClientID:     "client",
		ClientSecret: "secret",
		Scope:        "view_products:demo",
	}, store, gs.Client(), logDiscard(), WithClock(clock.Now))
}

func TestTokenProvider_ReusesTokenWithinWindow(t *testing.T) {
	gs := newGrantServer(t)
	clock := &fakeClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := newProvider(gs, token.NewMemory(), clock)

	first, err := p.Token(context.Background())
	require.NoError(t, err)
	clock.Advance(time.Hour - 10*time.Second)
	second, err := p.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), gs.grants.Load())
}

func TestTokenProvider_RefreshesInsideExpiryMargin(t *testing.T) {
	gs := newGrantServer(t)
	clock := &fakeClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := newProvider(gs, token.NewMemory(), clock)

	_, err := p.Token(context.Background())
	require.NoError(t, err)
	clock.Advance(time.Hour - 5*time.Second)
	tok, err := p.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, int32(2), gs.grants.Load())
}

func TestTokenProvider_DefaultsExpiryWhenAbsent(t *testing.T) {
	gs := newGrantServer(t)
	gs.expiresIn = 0
	clock := &fakeClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := token.NewMemory()
	p := newProvider(gs, store, clock)

	_, err := p.Token(context.Background())
	require.NoError(t, err)

	cached, err := store.Get(context.Background(), "client|view_products:demo")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(300*time.Second), cached.ExpiresAt)
	assert.Equal(t, "view_products:demo", cached.Scope)
}

func TestTokenProvider_RejectedGrantIsAuthError(t *testing.T) {
	gs := newGrantServer(t)
	gs.status = http.StatusForbidden
	clock := &fakeClock{now: time.Now()}
	p := newProvider(gs, token.NewMemory(), clock)

	_, err := p.Token(context.Background())
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.Status)
	assert.Contains(t, authErr.Error(), "rejected")
}

func TestTokenProvider_NetworkFailureIsAuthError(t *testing.T) {
	gs := newGrantServer(t)
	clock := &fakeClock{now: time.Now()}
	p := newProvider(gs, token.NewMemory(), clock)
	gs.Close()

	_, err := p.Token(context.Background())
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, authErr.Status)
}

func TestTokenProvider_ConcurrentCallersShareOneGrant(t *testing.T) {
	gs := newGrantServer(t)
	gs.delay = 50 * time.Millisecond
	clock := &fakeClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	p := newProvider(gs, token.NewMemory(), clock)

	const callers = 16
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = p.Token(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "tok-1", tokens[i])
	}
	assert.Equal(t, int32(1), gs.grants.Load())
}

type failingStore struct {
	puts int
}

func (s *failingStore) Get(context.Context, string) (*token.Token, error) {
	return nil, errors.New("store down")
}

func (s *failingStore) Put(context.Context, token.Token) error {
	s.puts++
	return errors.New("store down")
}

func (s *failingStore) Delete(context.Context, string) error {
	return errors.New("store down")
}

func TestTokenProvider_StoreFailuresAreNotFatal(t *testing.T) {
	gs := newGrantServer(t)
	clock := &fakeClock{now: time.Now()}
	store := &failingStore{}
	p := newProvider(gs, store, clock)

	tok, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, 1, store.puts)
}

func TestTokenProvider_InvalidateForcesNewGrant(t *testing.T) {
	gs := newGrantServer(t)
	clock := &fakeClock{now: time.Now()}
	p := newProvider(gs, token.NewMemory(), clock)

	_, err := p.Token(context.Background())
	require.NoError(t, err)
	p.Invalidate(context.Background())
	tok, err := p.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-2", tok)
}
