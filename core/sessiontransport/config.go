package sessiontransport

import (
	"github.com/dmitrymomot/rango/core/cookie"
)

const defaultCookieName = "__session"

// CookieConfig names the session cookie. Its other attributes come from the cookie.Manager.
type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	Secure     bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// NewCookieFromConfig builds the cookie transport. An empty name falls back to "__session".
func NewCookieFromConfig(cfg CookieConfig, cookieMgr *cookie.Manager) *Cookie {
	name := cfg.CookieName
	if name == "" {
		name = defaultCookieName
	}
	return NewCookie(cookieMgr, name, WithSecure(cfg.Secure))
}
