package sessiontransport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/rango/core/cookie"
)

// Cookie carries the session id in a signed HTTP cookie.
type Cookie struct {
	cookieMgr *cookie.Manager
	name      string
	secure    bool
}

// CookieOption configures a Cookie transport.
type CookieOption func(*Cookie)

// WithSecure marks the session cookie as HTTPS only.
func WithSecure(secure bool) CookieOption {
	return func(c *Cookie) {
		c.secure = secure
	}
}

// NewCookie creates a new cookie-based session transport.
func NewCookie(cookieMgr *cookie.Manager, name string, opts ...CookieOption) *Cookie {
	c := &Cookie{
		cookieMgr: cookieMgr,
		name:      name,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// Extract returns the session id carried by the request.
// Returns ErrNoToken when the cookie is absent and ErrInvalidToken when it was tampered with.
func (c *Cookie) Extract(r *http.Request) (string, error) {
	id, err := c.cookieMgr.GetSigned(r, c.name)
	switch {
	case errors.Is(err, cookie.ErrCookieNotFound):
		return "", ErrNoToken
	case err != nil:
		return "", errors.Join(ErrInvalidToken, err)
	case id == "":
		return "", ErrInvalidToken
	}
	return id, nil
}

// Embed writes the session id to the response, expiring together with the session.
func (c *Cookie) Embed(w http.ResponseWriter, id string, expiresAt time.Time) error {
	until := time.Until(expiresAt)
	if until <= 0 {
		return fmt.Errorf("%w: expired %v ago", ErrExpired, -until)
	}

	return c.cookieMgr.SetSigned(w, c.name, id,
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(c.secure),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(int(until.Seconds())),
	)
}

// Revoke removes the session cookie from the client.
func (c *Cookie) Revoke(w http.ResponseWriter) {
	c.cookieMgr.Delete(w, c.name)
}
