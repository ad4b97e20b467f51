package sessiontransport_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rango/core/cookie"
	"github.com/dmitrymomot/rango/core/sessiontransport"
)

// Helper to create a valid cookie manager
func newTestCookieManager(t *testing.T) *cookie.Manager {
	t.Helper()
	mgr, err := cookie.New([]string{"test-secret-key-exactly-32-char!"})
	require.NoError(t, err)
	return mgr
}

func TestCookie_RoundTrip(t *testing.T) {
	t.Parallel()

	transport := sessiontransport.NewCookie(newTestCookieManager(t), "__session")

	rec := httptest.NewRecorder()
	require.NoError(t, transport.Embed(rec, "session-id-123", time.Now().Add(time.Hour)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "__session", cookies[0].Name)
	assert.NotEqual(t, "session-id-123", cookies[0].Value, "value must be signed")
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.InDelta(t, 3600, cookies[0].MaxAge, 2)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	id, err := transport.Extract(req)
	require.NoError(t, err)
	assert.Equal(t, "session-id-123", id)
}

func TestCookie_Extract(t *testing.T) {
	t.Parallel()

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		transport := sessiontransport.NewCookie(newTestCookieManager(t), "__session")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := transport.Extract(req)
		assert.ErrorIs(t, err, sessiontransport.ErrNoToken)
	})

	t.Run("unsigned cookie", func(t *testing.T) {
		t.Parallel()
		transport := sessiontransport.NewCookie(newTestCookieManager(t), "__session")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "__session", Value: "forged-id"})

		_, err := transport.Extract(req)
		assert.ErrorIs(t, err, sessiontransport.ErrInvalidToken)
	})

	t.Run("signed with another secret", func(t *testing.T) {
		t.Parallel()
		other, err := cookie.New([]string{"another-secret-key-of-32-chars!!"})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		require.NoError(t, sessiontransport.NewCookie(other, "__session").
			Embed(rec, "id", time.Now().Add(time.Hour)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}

		_, err = sessiontransport.NewCookie(newTestCookieManager(t), "__session").Extract(req)
		assert.ErrorIs(t, err, sessiontransport.ErrInvalidToken)
	})
}

func TestCookie_Embed(t *testing.T) {
	t.Parallel()

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()
		transport := sessiontransport.NewCookie(newTestCookieManager(t), "__session")

		rec := httptest.NewRecorder()
		err := transport.Embed(rec, "id", time.Now().Add(-time.Minute))
		assert.ErrorIs(t, err, sessiontransport.ErrExpired)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("secure flag", func(t *testing.T) {
		t.Parallel()
		transport := sessiontransport.NewCookie(newTestCookieManager(t), "__session",
			sessiontransport.WithSecure(true))

		rec := httptest.NewRecorder()
		require.NoError(t, transport.Embed(rec, "id", time.Now().Add(time.Hour)))
		assert.True(t, rec.Result().Cookies()[0].Secure)
	})
}

func TestCookie_Revoke(t *testing.T) {
	t.Parallel()

	transport := sessiontransport.NewCookie(newTestCookieManager(t), "__session")

	rec := httptest.NewRecorder()
	transport.Revoke(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "__session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestNewCookieFromConfig(t *testing.T) {
	t.Parallel()

	transport := sessiontransport.NewCookieFromConfig(sessiontransport.CookieConfig{}, newTestCookieManager(t))
	assert.Equal(t, "__session", transport.Name())

	transport = sessiontransport.NewCookieFromConfig(sessiontransport.CookieConfig{CookieName: "sid"}, newTestCookieManager(t))
	assert.Equal(t, "sid", transport.Name())
}
