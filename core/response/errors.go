package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/rango/core/handler"
)

// HTTPError is an error rendered with its own status code.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status of the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy with message replaced.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy with details replaced.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy recording err as the "cause" detail.
func (e HTTPError) WithError(err error) HTTPError {
	if err == nil {
		return e
	}
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

func newHTTPError(status int, code string) HTTPError {
	return HTTPError{Status: status, Code: code, Message: http.StatusText(status)}
}

var (
	ErrBadRequest          = newHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound            = newHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed    = newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict            = newHTTPError(http.StatusConflict, "conflict")
	ErrInternalServerError = newHTTPError(http.StatusInternalServerError, "internal_server_error")
	ErrBadGateway          = newHTTPError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable  = newHTTPError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout      = newHTTPError(http.StatusGatewayTimeout, "gateway_timeout")
)

var errorsByStatus = func() map[int]HTTPError {
	m := map[int]HTTPError{}
	for _, e := range []HTTPError{
		ErrBadRequest,
		ErrNotFound,
		ErrMethodNotAllowed,
		ErrConflict,
		ErrInternalServerError,
		ErrBadGateway,
		ErrServiceUnavailable,
		ErrGatewayTimeout,
	} {
		m[e.Status] = e
	}
	return m
}()

// ToHTTPError resolves err to an HTTPError: one found in the chain wins, then an
// error exposing StatusCode() int, then 500.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		if base, ok := errorsByStatus[sc.StatusCode()]; ok {
			return base.WithError(err)
		}
	}
	return ErrInternalServerError.WithError(err)
}

// ErrorHandler renders err as plain text with its resolved status.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Message, httpErr.Status))
}
