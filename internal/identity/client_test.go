package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/internal/identity"
)

type recordedCall struct {
	path   string
	header http.Header
	body   int64
}

type fakeService struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []recordedCall
}

func newFakeService(t *testing.T, handler http.HandlerFunc) *fakeService {
	t.Helper()

	fs := &fakeService{}
	fs.srv = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.calls = append(fs.calls, recordedCall{path: r.URL.Path, header: r.Header.Clone(), body: r.ContentLength})
		fs.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(fs.srv.Close)
	return fs
}

func (fs *fakeService) Calls() []recordedCall {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recordedCall(nil), fs.calls...)
}

func (fs *fakeService) client(t *testing.T, opts ...identity.Option) *identity.Client {
	t.Helper()

	cfg := identity.Config{
		BaseURL:        fs.srv.URL,
		Username:       "rango",
		Password:       "secret",
		DeviceID:       "device-1",
		AppVersion:     "1.0.0",
		OrganizationID: "org-1",
		ProjectID:      "project-1",
		AppID:          "app-1",
		Timeout:        time.Second,
		RetryAttempts:  0,
		RetryInterval:  time.Millisecond,
	}
	c, err := identity.NewFromConfig(cfg, append([]identity.Option{identity.WithHTTPClient(fs.srv.Client())}, opts...)...)
	require.NoError(t, err)
	return c
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := identity.New("", nil)
	assert.ErrorIs(t, err, identity.ErrMissingBaseURL)

	_, err = identity.New("identity.local", nil)
	assert.ErrorIs(t, err, identity.ErrInvalidBaseURL)

	c, err := identity.New("https://identity.local/", nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSendRequest(t *testing.T) {
	t.Parallel()

	t.Run("empty body is absent", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(""))

		rec, err := fs.client(t).SendRequest(context.Background(), identity.PathClientIDs, nil)
		require.NoError(t, err)
		assert.False(t, rec.IsPresent())
	})

	t.Run("empty object is present", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond("{}"))

		rec, err := fs.client(t).SendRequest(context.Background(), identity.PathClientIDs, nil)
		require.NoError(t, err)
		got, ok := rec.Get()
		require.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("decodes record", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(`{"id":"abc","extra":1}`))

		rec, err := fs.client(t).SendRequest(context.Background(), identity.PathClientIDs, nil)
		require.NoError(t, err)
		got, ok := rec.Get()
		require.True(t, ok)
		assert.Equal(t, "abc", got["id"])
	})

	t.Run("sends static and extra headers with empty body", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(""))

		extra := http.Header{}
		extra.Set(identity.HeaderClientID, "abc")
		_, err := fs.client(t).SendRequest(context.Background(), identity.PathAuthTokens, extra)
		require.NoError(t, err)

		calls := fs.Calls()
		require.Len(t, calls, 1)
		h := calls[0].header
		assert.Equal(t, identity.PathAuthTokens, calls[0].path)
		assert.Zero(t, calls[0].body)
		assert.Equal(t, "rango", h.Get(identity.HeaderUsername))
		assert.Equal(t, "secret", h.Get(identity.HeaderPassword))
		assert.Equal(t, "device-1", h.Get(identity.HeaderDeviceID))
		assert.Equal(t, "1.0.0", h.Get(identity.HeaderAppVersion))
		assert.Equal(t, "org-1", h.Get(identity.HeaderOrganizationID))
		assert.Equal(t, "project-1", h.Get(identity.HeaderProjectID))
		assert.Equal(t, "app-1", h.Get(identity.HeaderAppID))
		assert.Equal(t, "abc", h.Get(identity.HeaderClientID))
		assert.Equal(t, "application/x-www-form-urlencoded", h.Get("Content-Type"))
	})

	t.Run("header names are sent as written", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(""))

		var (
			mu   sync.Mutex
			sent http.Header
		)
		hc := fs.srv.Client()
		base := hc.Transport
		hc.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
			mu.Lock()
			sent = r.Header.Clone()
			mu.Unlock()
			return base.RoundTrip(r)
		})

		extra := http.Header{identity.HeaderClientID: {"abc"}}
		_, err := fs.client(t, identity.WithHTTPClient(hc)).
			SendRequest(context.Background(), identity.PathAuthTokens, extra)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		for _, name := range []string{
			identity.HeaderOrganizationID,
			identity.HeaderProjectID,
			identity.HeaderAppID,
			identity.HeaderClientID,
		} {
			assert.Contains(t, sent, name)
		}
		assert.Equal(t, []string{"org-1"}, sent["organizationID"])
		assert.NotContains(t, sent, "Organizationid")
	})

	t.Run("non-JSON body", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond("<html>oops</html>"))

		_, err := fs.client(t).SendRequest(context.Background(), identity.PathClientIDs, nil)
		assert.ErrorIs(t, err, identity.ErrBadResponse)
	})

	t.Run("client error is not retried", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := fs.client(t, identity.WithRetry(3, time.Millisecond)).
			SendRequest(context.Background(), identity.PathClientIDs, nil)
		assert.ErrorIs(t, err, identity.ErrBadResponse)

		var serr *identity.StatusError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, http.StatusUnauthorized, serr.StatusCode)
		assert.Len(t, fs.Calls(), 1)
	})

	t.Run("server error is retried", func(t *testing.T) {
		t.Parallel()
		var n atomic.Int32
		fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
			if n.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"id":"abc"}`))
		})

		rec, err := fs.client(t, identity.WithRetry(3, time.Millisecond)).
			SendRequest(context.Background(), identity.PathClientIDs, nil)
		require.NoError(t, err)
		assert.True(t, rec.IsPresent())
		assert.Len(t, fs.Calls(), 3)
	})

	t.Run("retries exhausted", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := fs.client(t, identity.WithRetry(2, time.Millisecond)).
			SendRequest(context.Background(), identity.PathClientIDs, nil)
		assert.ErrorIs(t, err, identity.ErrServiceUnavailable)
		assert.Len(t, fs.Calls(), 3)
	})

	t.Run("attempt timeout", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})

		start := time.Now()
		_, err := fs.client(t, identity.WithTimeout(50*time.Millisecond)).
			SendRequest(context.Background(), identity.PathClientIDs, nil)
		assert.ErrorIs(t, err, identity.ErrServiceUnavailable)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("certificates are verified", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(`{"id":"abc"}`))

		c, err := identity.New(fs.srv.URL, nil, identity.WithRetry(0, time.Millisecond))
		require.NoError(t, err)

		_, err = c.SendRequest(context.Background(), identity.PathClientIDs, nil)
		assert.ErrorIs(t, err, identity.ErrServiceUnavailable)
		assert.Empty(t, fs.Calls())
	})
}

func TestCircuitBreaker(t *testing.T) {
	t.Parallel()

	var healthy atomic.Bool
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	})

	var (
		mu  sync.Mutex
		now = time.Unix(1_700_000_000, 0)
	)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := fs.client(t,
		identity.WithBreaker(2, time.Minute),
		identity.WithClock(clock),
	)
	ctx := context.Background()

	for range 2 {
		_, err := c.FetchClientID(ctx)
		require.ErrorIs(t, err, identity.ErrServiceUnavailable)
	}
	require.Len(t, fs.Calls(), 2)

	_, err := c.FetchClientID(ctx)
	assert.ErrorIs(t, err, identity.ErrServiceUnavailable)
	assert.ErrorIs(t, err, identity.ErrCircuitOpen)
	assert.Len(t, fs.Calls(), 2, "open breaker must not reach the service")

	healthy.Store(true)
	mu.Lock()
	now = now.Add(time.Minute)
	mu.Unlock()

	id, err := c.FetchClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", id.OrElse(""))
	assert.Len(t, fs.Calls(), 3)
}

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("client id", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(`{"id":"client-42"}`))

		id, err := fs.client(t).FetchClientID(context.Background())
		require.NoError(t, err)
		v, ok := id.Get()
		require.True(t, ok)
		assert.Equal(t, "client-42", v)
		assert.Equal(t, identity.PathClientIDs, fs.Calls()[0].path)
	})

	t.Run("auth token", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(`{"authToken":"tok"}`))

		tok, err := fs.client(t).FetchAuthToken(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "tok", tok.OrElse(""))
		assert.Equal(t, identity.PathAuthTokens, fs.Calls()[0].path)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(`{"token":"tok"}`))

		_, err := fs.client(t).FetchAuthToken(context.Background(), nil)
		assert.ErrorIs(t, err, identity.ErrBadResponse)
	})

	t.Run("non-string key", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(`{"id":42}`))

		_, err := fs.client(t).FetchClientID(context.Background())
		assert.ErrorIs(t, err, identity.ErrBadResponse)
	})

	t.Run("empty response is absent", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, respond(""))

		id, err := fs.client(t).FetchClientID(context.Background())
		require.NoError(t, err)
		assert.False(t, id.IsPresent())
	})
}

func TestHandshake(t *testing.T) {
	t.Parallel()

	t.Run("chains client id into auth token call", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case identity.PathClientIDs:
				_, _ = w.Write([]byte(`{"id":"client-42"}`))
			case identity.PathAuthTokens:
				_, _ = w.Write([]byte(`{"authToken":"token-for-` + r.Header.Get(identity.HeaderClientID) + `"}`))
			}
		})

		hs := fs.client(t).Handshake(context.Background())
		assert.Equal(t, "client-42", hs.ClientID.OrElse(""))
		assert.Equal(t, "token-for-client-42", hs.AuthToken.OrElse(""))

		calls := fs.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, identity.PathClientIDs, calls[0].path)
		assert.Empty(t, calls[0].header.Values(identity.HeaderClientID))
		assert.Equal(t, identity.PathAuthTokens, calls[1].path)
		assert.Equal(t, "client-42", calls[1].header.Get(identity.HeaderClientID))
	})

	t.Run("absent client id still requests token without header", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == identity.PathAuthTokens {
				_, _ = w.Write([]byte(`{"authToken":"anonymous"}`))
			}
		})

		hs := fs.client(t).Handshake(context.Background())
		assert.False(t, hs.ClientID.IsPresent())
		assert.Equal(t, "anonymous", hs.AuthToken.OrElse(""))

		calls := fs.Calls()
		require.Len(t, calls, 2)
		assert.Empty(t, calls[1].header.Values(identity.HeaderClientID))
	})

	t.Run("failures degrade to absent values", func(t *testing.T) {
		t.Parallel()
		fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		hs := fs.client(t).Handshake(context.Background())
		assert.False(t, hs.ClientID.IsPresent())
		assert.False(t, hs.AuthToken.IsPresent())
		assert.Len(t, fs.Calls(), 2)
	})
}

func TestOptional(t *testing.T) {
	t.Parallel()

	some := identity.Some("x")
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, "x", some.OrElse("y"))

	none := identity.None[string]()
	assert.False(t, none.IsPresent())
	assert.Equal(t, "y", none.OrElse("y"))
}

func TestConfigHeaders(t *testing.T) {
	t.Parallel()

	h := identity.Config{OrganizationID: "org-1", ProjectID: "project-1", AppID: "app-1", Username: "rango"}.Headers()

	assert.Equal(t, []string{"org-1"}, h["organizationID"])
	assert.Equal(t, []string{"project-1"}, h["projectID"])
	assert.Equal(t, []string{"app-1"}, h["appID"])
	assert.Equal(t, []string{"rango"}, h["X-Api-Username"])
	assert.Len(t, h, 7)
}
