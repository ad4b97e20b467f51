package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers keep key names consistent across the app. Helpers taking
// optional values return the zero Attr, which slog drops, so callers need no
// nil or empty checks.

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error is the "error" attribute, empty for a nil err.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

func optionalString(key, v string) slog.Attr {
	if v == "" {
		return slog.Attr{}
	}
	return slog.String(key, v)
}

// Identifiers. Empty ids produce no attribute.

func RequestID(id string) slog.Attr { return optionalString("request_id", id) }
func SessionID(id string) slog.Attr { return optionalString("session_id", id) }
func ClientID(id string) slog.Attr  { return optionalString("client_id", id) }

// HTTP.

func Method(m string) slog.Attr        { return slog.String("method", m) }
func Path(p string) slog.Attr          { return slog.String("path", p) }
func StatusCode(code int) slog.Attr    { return slog.Int("status_code", code) }
func RemoteAddr(addr string) slog.Attr { return slog.String("remote_addr", addr) }
func BytesOut(n int64) slog.Attr       { return slog.Int64("bytes_out", n) }

// Metadata.

func Component(name string) slog.Attr   { return slog.String("component", name) }
func Event(name string) slog.Attr       { return slog.String("event", name) }
func Count(key string, n int) slog.Attr { return slog.Int(key, n) }
func RetryCount(n int) slog.Attr        { return slog.Int("retry_count", n) }
