package cookie

import "errors"

var (
	ErrNoSecret         = errors.New("cookie: no signing secret configured")
	ErrSecretTooShort   = errors.New("cookie: signing secret is shorter than 32 bytes")
	ErrCookieNotFound   = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: malformed signed value")
	ErrInvalidSignature = errors.New("cookie: signature mismatch")
	ErrCookieTooLarge   = errors.New("cookie: exceeds size limit")
)
