package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/rango/core/handler"
)

// routeError is a routing failure that knows its HTTP status.
type routeError struct {
	msg    string
	status int
}

func (e *routeError) Error() string   { return e.msg }
func (e *routeError) StatusCode() int { return e.status }

var (
	ErrNotFound         error = &routeError{msg: "not found", status: http.StatusNotFound}
	ErrMethodNotAllowed error = &routeError{msg: "method not allowed", status: http.StatusMethodNotAllowed}

	ErrNoContextFactory = errors.New("router: context factory is required for custom context types")
	ErrNilResponse      = errors.New("router: handler returned a nil response")
	ErrInvalidPattern   = errors.New("router: invalid route pattern")
)

// PanicError is passed to the error handler when a handler panics before
// writing the response.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// defaultErrorHandler writes err as plain text with the status it exposes, 500 otherwise.
// A response that has already started is left alone.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.status != 0 {
		return
	}

	status := http.StatusInternalServerError
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	http.Error(w, err.Error(), status)
}
