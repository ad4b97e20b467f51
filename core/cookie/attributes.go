package cookie

import "net/http"

// Attributes are the cookie attributes written with a value.
type Attributes struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// Option overrides attributes for the manager defaults or a single write.
type Option func(*Attributes)

func WithPath(path string) Option {
	return func(a *Attributes) { a.Path = path }
}

func WithDomain(domain string) Option {
	return func(a *Attributes) { a.Domain = domain }
}

// WithMaxAge sets Max-Age in seconds. Zero leaves a browser-session cookie.
func WithMaxAge(seconds int) Option {
	return func(a *Attributes) { a.MaxAge = seconds }
}

func WithSecure(secure bool) Option {
	return func(a *Attributes) { a.Secure = secure }
}

func WithHTTPOnly(httpOnly bool) Option {
	return func(a *Attributes) { a.HTTPOnly = httpOnly }
}

func WithSameSite(mode http.SameSite) Option {
	return func(a *Attributes) { a.SameSite = mode }
}

func (a Attributes) with(opts []Option) Attributes {
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a Attributes) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     a.Path,
		Domain:   a.Domain,
		MaxAge:   a.MaxAge,
		Secure:   a.Secure,
		HttpOnly: a.HTTPOnly,
		SameSite: a.SameSite,
	}
}
