package handler

import (
	"context"
	"net/http"
)

// Context is the per-request value handlers receive. It is itself a
// context.Context carrying the request's deadline and values.
type Context interface {
	context.Context

	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns a path wildcard value, "" when absent.
	Param(key string) string
	// SetValue stores a value visible to later Value lookups on this context.
	SetValue(key, val any)
}
