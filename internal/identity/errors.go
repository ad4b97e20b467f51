package identity

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrServiceUnavailable covers network failures, timeouts, 5xx and 429
	// responses and calls rejected by the open circuit breaker.
	ErrServiceUnavailable = errors.New("identity service unavailable")
	// ErrBadResponse covers 4xx responses, non-JSON bodies and missing keys.
	ErrBadResponse = errors.New("identity service bad response")
	// ErrCircuitOpen is wrapped into ErrServiceUnavailable while the breaker is open.
	ErrCircuitOpen     = errors.New("identity circuit breaker is open")
	ErrMissingBaseURL  = errors.New("identity base url is required")
	ErrInvalidBaseURL  = errors.New("identity base url is invalid")
	errMissingKey      = errors.New("expected key is missing or not a string")
	errResponseTooLong = errors.New("response body exceeds limit")
)

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("identity service responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Unwrap() error {
	if retryableStatus(e.StatusCode) {
		return ErrServiceUnavailable
	}
	return ErrBadResponse
}

func retryableStatus(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
}
