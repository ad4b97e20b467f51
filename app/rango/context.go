package rango

import (
	"net/http"

	"github.com/dmitrymomot/rango/core/router"
	"github.com/dmitrymomot/rango/core/session"
	"github.com/dmitrymomot/rango/middleware"
)

// Context is the request context handed to rango handlers.
type Context struct {
	*router.Context
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{Context: router.NewContext(w, r)}
}

// Session returns the visitor session loaded by the session middleware.
func (c *Context) Session() session.Session[SessionData] {
	return middleware.MustGetSession[SessionData](c)
}

// SaveSession replaces the session data; the middleware persists it after the handler returns.
func (c *Context) SaveSession(sess session.Session[SessionData], data SessionData) {
	sess.SetData(data)
	middleware.SetSession(c, sess)
}
