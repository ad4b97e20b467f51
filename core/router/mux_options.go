package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rango/core/handler"
)

// Option configures a router created by New.
type Option[C handler.Context] func(*mux[C])

// WithContextFactory builds the handler context of every request.
// Required unless C is *Context.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) { m.newContext = f }
}

// WithErrorHandler replaces the plain text default error handler.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware is equivalent to calling Use right after New.
func WithMiddleware[C handler.Context](mws ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) { m.middlewares = append(m.middlewares, mws...) }
}

// WithLogger sets the logger used for panics that cannot be reported to the client.
func WithLogger[C handler.Context](l *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if l != nil {
			m.logger = l
		}
	}
}
