package sessiontransport

import "errors"

var (
	// ErrNoToken is returned when no session cookie is present in the request
	ErrNoToken = errors.New("sessiontransport: no token")

	// ErrInvalidToken is returned when the cookie format or signature is invalid
	ErrInvalidToken = errors.New("sessiontransport: invalid token")

	// ErrExpired is returned when embedding a session that has already expired
	ErrExpired = errors.New("sessiontransport: session expired")
)
