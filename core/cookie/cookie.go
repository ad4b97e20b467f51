package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// MaxCookieSize is the browser limit for a Set-Cookie header value.
	MaxCookieSize = 4096

	minSecretLength = 32
)

var encoding = base64.RawURLEncoding

// Manager writes and verifies HMAC-SHA256 signed cookies.
// The first secret signs; every secret is accepted on read so keys can be rotated.
type Manager struct {
	keys    [][]byte
	attrs   Attributes
	maxSize int
}

// New creates a manager. Empty secrets are ignored; the rest must be at least 32 bytes.
// Defaults are Path=/, HttpOnly and SameSite=Lax; opts override them.
func New(secrets []string, opts ...Option) (*Manager, error) {
	keys := make([][]byte, 0, len(secrets))
	for i, s := range secrets {
		if s == "" {
			continue
		}
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret #%d has %d bytes", ErrSecretTooShort, i, len(s))
		}
		keys = append(keys, []byte(s))
	}
	if len(keys) == 0 {
		return nil, ErrNoSecret
	}

	defaults := Attributes{Path: "/", HTTPOnly: true, SameSite: http.SameSiteLaxMode}
	return &Manager{
		keys:    keys,
		attrs:   defaults.with(opts),
		maxSize: MaxCookieSize,
	}, nil
}

// SetSigned writes value under name with a signature bound to the cookie name.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	c := m.attrs.with(opts).cookie(name, m.sign(m.keys[0], name, value))

	header := c.String()
	if header == "" {
		return fmt.Errorf("%w: invalid cookie name %q", ErrInvalidFormat, name)
	}
	if len(header) > m.maxSize {
		return fmt.Errorf("%w: %q is %d bytes, limit %d", ErrCookieTooLarge, name, len(header), m.maxSize)
	}

	http.SetCookie(w, c)
	return nil
}

// GetSigned returns the verified value of cookie name.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrCookieNotFound
	}
	if err != nil {
		return "", err
	}

	encoded, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return "", ErrInvalidFormat
	}
	raw, err := encoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidFormat
	}
	mac, err := encoding.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	value := string(raw)
	for _, key := range m.keys {
		if hmac.Equal(mac, m.mac(key, name, value)) {
			return value, nil
		}
	}
	return "", ErrInvalidSignature
}

// Delete expires cookie name in the browser.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	c := m.attrs.cookie(name, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *Manager) sign(key []byte, name, value string) string {
	return encoding.EncodeToString([]byte(value)) + "." + encoding.EncodeToString(m.mac(key, name, value))
}

func (m *Manager) mac(key []byte, name, value string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}
