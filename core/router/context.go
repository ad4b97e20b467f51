package router

import (
	"net/http"
	"sync"
	"time"
)

// Context is the stock handler.Context. Cancellation and deadlines come from
// the request; values set with SetValue shadow request context values.
type Context struct {
	w http.ResponseWriter
	r *http.Request

	mu     sync.RWMutex
	values map[any]any
}

func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{w: w, r: r}
}

func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }

func (c *Context) Done() <-chan struct{} { return c.r.Context().Done() }

func (c *Context) Err() error { return c.r.Context().Err() }

func (c *Context) Value(key any) any {
	c.mu.RLock()
	val, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return val
	}
	return c.r.Context().Value(key)
}

func (c *Context) Request() *http.Request { return c.r }

func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

func (c *Context) Param(key string) string { return c.r.PathValue(key) }

func (c *Context) SetValue(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}
