package router

import (
	"net/http"

	"github.com/dmitrymomot/rango/core/handler"
)

// Router registers typed handlers on top of http.ServeMux.
// Patterns use ServeMux syntax, e.g. "/category/{slug}" or "/{$}".
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	// Handle matches any method.
	Handle(pattern string, h handler.HandlerFunc[C])

	// Use appends router-wide middleware. It panics once a route is registered.
	Use(mw ...handler.Middleware[C])
	// With returns a view of the router whose routes also run mw.
	With(mw ...handler.Middleware[C]) Router[C]
	// Group runs fn against a With() view with no extra middleware.
	Group(fn func(r Router[C])) Router[C]

	// Routes lists registered routes in registration order.
	Routes() []Route
}

// Route is a registered method and pattern. Method is empty for Handle.
type Route struct {
	Method  string
	Pattern string
}

func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
