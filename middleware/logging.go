package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/rango/core/handler"
	"github.com/dmitrymomot/rango/core/logger"
)

var defaultRedactedHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "X-Auth-Token"}

// LoggingConfig configures request logging.
type LoggingConfig struct {
	Skip   func(ctx handler.Context) bool
	Logger *slog.Logger // slog.Default() when nil

	// LogHeaders adds request headers to the record. Values of RedactHeaders are masked.
	LogHeaders    bool
	RedactHeaders []string

	// SlowThreshold marks requests slower than this as warnings. Defaults to 3s.
	SlowThreshold time.Duration
}

// Logging logs every request with slog.Default().
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger logs every request with log.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig emits one record per request once the response has been rendered.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RedactHeaders == nil {
		cfg.RedactHeaders = defaultRedactedHeaders
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = 3 * time.Second
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)
			if resp == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w}
				err := resp(rec, r)
				elapsed := time.Since(start)

				status := rec.code()
				if err != nil && rec.status == 0 {
					status = errorStatus(err)
				}

				req := ctx.Request()
				id, _ := GetRequestID(ctx)
				attrs := []slog.Attr{
					logger.Component("http"),
					logger.RequestID(id),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.RemoteAddr(req.RemoteAddr),
					logger.StatusCode(status),
					logger.BytesOut(rec.written),
					logger.Duration(elapsed),
				}
				if cfg.LogHeaders {
					attrs = append(attrs, slog.Any("request_headers", headerMap(req.Header, cfg.RedactHeaders)))
				}

				level := slog.LevelInfo
				attrs = append(attrs, logger.Error(err))
				switch {
				case status >= http.StatusInternalServerError, err != nil && rec.status != 0:
					level = slog.LevelError
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
				case elapsed > cfg.SlowThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(req.Context(), level, "HTTP request completed", attrs...)
				return err
			}
		}
	}
}

// errorStatus is the status the router's error handler will render for err.
func errorStatus(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

func headerMap(h http.Header, redact []string) map[string]any {
	out := make(map[string]any, len(h))
	for k, v := range h {
		switch {
		case slices.Contains(redact, k):
			out[k] = "[REDACTED]"
		case len(v) == 1:
			out[k] = v[0]
		default:
			out[k] = v
		}
	}
	return out
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
		s.ResponseWriter.WriteHeader(code)
	}
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.WriteHeader(http.StatusOK)
	}
	n, err := s.ResponseWriter.Write(b)
	s.written += int64(n)
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }
