package visit

import (
	"errors"
	"fmt"
)

// ErrInvalidCookieFormat is matched by every ParseError.
var ErrInvalidCookieFormat = errors.New("invalid visit cookie format")

// ParseError reports a visit value that could not be read.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("visit: invalid %s value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("visit: invalid %s value %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidCookieFormat}
	}
	return []error{ErrInvalidCookieFormat, e.Err}
}
