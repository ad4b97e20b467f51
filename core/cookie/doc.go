// Package cookie signs cookie values with HMAC-SHA256.
//
// The signature covers the cookie name as well as the value, so a signed value
// cannot be replayed under another name:
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	err = m.SetSigned(w, "__session", id, cookie.WithMaxAge(3600))
//	id, err := m.GetSigned(r, "__session") // ErrInvalidSignature on tampering
//
// Several secrets may be configured; the first signs and all verify.
package cookie
