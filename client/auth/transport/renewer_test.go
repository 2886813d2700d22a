package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/liftlog/liftlog-go/apierror"
	"github.com/liftlog/liftlog-go/client/auth/store"
)

func stalePair() *oauth2.Token {
	return &oauth2.Token{AccessToken: "stale", RefreshToken: "refresh"}
}

// newExpiryServer accepts only the renewed access token and rejects
// everything else with 401.
func newExpiryServer(t *testing.T, renewed string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+renewed {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
}

func TestRenewer_SingleFlight(t *testing.T) {
	server := newExpiryServer(t, "renewed")
	defer server.Close()

	credentials := store.NewMemoryStore()
	require.NoError(t, credentials.Save(stalePair()))

	var exchanges atomic.Int32
	rt, err := New(
		WithStore(credentials),
		WithExchange(func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			exchanges.Add(1)
			time.Sleep(50 * time.Millisecond) // widen the race window
			return &oauth2.Token{AccessToken: "renewed", RefreshToken: "refresh-2"}, nil
		}),
	)
	require.NoError(t, err)
	httpClient := &http.Client{Transport: rt}

	const concurrent = 8
	var wg sync.WaitGroup
	results := make([]int, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := httpClient.Get(server.URL)
			require.NoError(t, err)
			defer resp.Body.Close()
			results[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), exchanges.Load(), "exactly one renewal exchange")
	for i, status := range results {
		assert.Equal(t, http.StatusOK, status, "request %d resolved with the renewed credential", i)
	}
}

func TestRenewer_ReplaysInSubmissionOrder(t *testing.T) {
	var mu sync.Mutex
	var replayed []string
	attempted := make(chan string, 16)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer renewed" {
			attempted <- r.Header.Get("X-Request-Name")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mu.Lock()
		replayed = append(replayed, r.Header.Get("X-Request-Name"))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	credentials := store.NewMemoryStore()
	require.NoError(t, credentials.Save(stalePair()))

	release := make(chan struct{})
	rt, err := New(
		WithStore(credentials),
		WithExchange(func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			<-release
			return &oauth2.Token{AccessToken: "renewed", RefreshToken: "refresh-2"}, nil
		}),
	)
	require.NoError(t, err)
	httpClient := &http.Client{Transport: rt}

	const total = 4
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		name := fmt.Sprintf("req-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("X-Request-Name", name)
			resp, err := httpClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
		}()
		// wait until this request faulted before firing the next, then give
		// it a beat to park, pinning the submission order
		assert.Equal(t, name, <-attempted)
		time.Sleep(10 * time.Millisecond)
	}
	close(release)
	wg.Wait()

	expected := []string{"req-0", "req-1", "req-2", "req-3"}
	assert.Equal(t, expected, replayed)
}

func TestRenewer_FailClosed(t *testing.T) {
	server := newExpiryServer(t, "never-issued")
	defer server.Close()

	credentials := store.NewMemoryStore()
	require.NoError(t, credentials.Save(stalePair()))

	var expired atomic.Bool
	rt, err := New(
		WithStore(credentials),
		WithExchange(func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			time.Sleep(20 * time.Millisecond)
			return nil, apierror.Domain("refresh token revoked")
		}),
		WithOnSessionExpired(func(err error) { expired.Store(true) }),
	)
	require.NoError(t, err)
	httpClient := &http.Client{Transport: rt}

	const concurrent = 5
	var wg sync.WaitGroup
	errs := make([]error, concurrent)
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = httpClient.Get(server.URL)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.Error(t, err, "request %d", i)
		assert.True(t, apierror.Is(err, apierror.KindSessionExpired), "request %d got %v", i, err)
	}
	assert.True(t, expired.Load(), "session-expired hook fired")

	token, loadErr := credentials.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, token, "store cleared after failed renewal")
}

func TestRenewer_CredentialMonotonicity(t *testing.T) {
	var lastSeen atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		lastSeen.Store(auth)
		if auth != "Bearer renewed" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	credentials := store.NewMemoryStore()
	require.NoError(t, credentials.Save(stalePair()))

	rt, err := New(
		WithStore(credentials),
		WithExchange(func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			return &oauth2.Token{AccessToken: "renewed", RefreshToken: "refresh-2"}, nil
		}),
	)
	require.NoError(t, err)
	httpClient := &http.Client{Transport: rt}

	resp, err := httpClient.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	// every request after the renewal carries the new credential
	for i := 0; i < 3; i++ {
		resp, err = httpClient.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Bearer renewed", lastSeen.Load())
	}
}

func TestRenewer_TransientExchangeFailureKeepsSession(t *testing.T) {
	server := newExpiryServer(t, "never-issued")
	defer server.Close()

	credentials := store.NewMemoryStore()
	require.NoError(t, credentials.Save(stalePair()))

	var expired atomic.Bool
	rt, err := New(
		WithStore(credentials),
		WithExchange(func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			return nil, apierror.Network(fmt.Errorf("connection refused"))
		}),
		WithOnSessionExpired(func(err error) { expired.Store(true) }),
	)
	require.NoError(t, err)
	httpClient := &http.Client{Transport: rt}

	_, err = httpClient.Get(server.URL)
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindNetwork))

	// the refresh token was never judged invalid: still signed in
	assert.False(t, expired.Load())
	token, loadErr := credentials.Load()
	require.NoError(t, loadErr)
	require.NotNil(t, token)
	assert.Equal(t, "stale", token.AccessToken)
}

func TestRenewer_AbandonedCallerDoesNotStopRenewal(t *testing.T) {
	server := newExpiryServer(t, "renewed")
	defer server.Close()

	credentials := store.NewMemoryStore()
	require.NoError(t, credentials.Save(stalePair()))

	release := make(chan struct{})
	renewedStored := make(chan struct{})
	rt, err := New(
		WithStore(credentials),
		WithExchange(func(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
			<-release
			return &oauth2.Token{AccessToken: "renewed", RefreshToken: "refresh-2"}, nil
		}),
		WithOnRenewed(func(token *oauth2.Token) { close(renewedStored) }),
	)
	require.NoError(t, err)
	httpClient := &http.Client{Transport: rt}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
		_, err := httpClient.Do(req)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond) // let the request park
	cancel()
	require.Error(t, <-errCh, "abandoned caller unblocks immediately")

	close(release)
	select {
	case <-renewedStored:
	case <-time.After(time.Second):
		t.Fatal("renewal did not run to completion after abandonment")
	}

	token, loadErr := credentials.Load()
	require.NoError(t, loadErr)
	require.NotNil(t, token)
	assert.Equal(t, "renewed", token.AccessToken)
}
