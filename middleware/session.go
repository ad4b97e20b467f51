package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/rango/core/handler"
	"github.com/dmitrymomot/rango/core/logger"
	"github.com/dmitrymomot/rango/core/response"
	"github.com/dmitrymomot/rango/core/session"
)

type sessionKey struct{}

// SessionTransport carries the session id between the client and the server.
type SessionTransport interface {
	Extract(r *http.Request) (string, error)
	Embed(w http.ResponseWriter, id string, expiresAt time.Time) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context, Data any] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Manager loads, saves and serializes sessions (required)
	Manager *session.Manager[Data]
	// Transport reads and writes the session id (required)
	Transport SessionTransport
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// ErrorHandler builds the response for load and save failures
	// Default: returns response.Error(response.ErrInternalServerError.WithError(err))
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session creates middleware that loads the session before the handler runs and
// saves it afterwards, before the response is written.
//
// Usage:
//
//	r.Use(middleware.Session[*AppContext](sessionMgr, transport))
//
//	func about(ctx *AppContext) handler.Response {
//		sess := middleware.MustGetSession[VisitorSession](ctx)
//		sess.Data.Visits++
//		sess.SetData(sess.Data)
//		middleware.SetSession(ctx, sess)
//		return response.Templ(views.About(sess.Data.Visits))
//	}
func Session[C handler.Context, Data any](mgr *session.Manager[Data], transport SessionTransport) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C, Data]{
		Manager:   mgr,
		Transport: transport,
	})
}

// SessionWithConfig creates a session middleware with custom configuration.
//
// The whole request holds the per-session lock of the manager, so concurrent
// requests carrying the same session id are processed one at a time within the
// process. A write rejected with session.ErrConflict (another process saved the
// same session first) is logged and the response is still sent.
func SessionWithConfig[C handler.Context, Data any](cfg SessionConfig[C, Data]) handler.Middleware[C] {
	if cfg.Manager == nil {
		panic("session middleware: manager is required")
	}
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return response.Error(response.ErrInternalServerError.WithError(err))
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			// Missing or tampered cookies start a fresh session
			id, _ := cfg.Transport.Extract(ctx.Request())

			if id != "" {
				unlock := cfg.Manager.Lock(id)
				defer unlock()
			}

			sess, err := cfg.Manager.Load(ctx, id)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.ErrorContext(ctx, "failed to load session",
					logger.Component("session"),
					logger.SessionID(id),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			// Handler may have replaced the session
			current, ok := GetSession[Data](ctx)
			if !ok {
				return resp
			}

			saved, err := cfg.Manager.Save(ctx, current)
			switch {
			case errors.Is(err, session.ErrConflict):
				cfg.Logger.WarnContext(ctx, "session changed concurrently, update dropped",
					logger.Component("session"),
					logger.SessionID(current.ID),
					slog.Int64("version", current.Version),
				)
				return resp
			case err != nil:
				cfg.Logger.ErrorContext(ctx, "failed to save session",
					logger.Component("session"),
					logger.SessionID(current.ID),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			// Cookie is refreshed whenever the store was written
			if saved.Version == current.Version || resp == nil {
				return resp
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				if err := cfg.Transport.Embed(w, saved.ID, saved.ExpiresAt); err != nil {
					return err
				}
				return resp(w, r)
			}
		}
	}
}

// GetSession retrieves session from context.
// Returns the session and true if found, empty session and false otherwise.
func GetSession[Data any](ctx handler.Context) (session.Session[Data], bool) {
	if ctx == nil {
		return session.Session[Data]{}, false
	}

	if sess, ok := ctx.Value(sessionKey{}).(session.Session[Data]); ok {
		return sess, true
	}

	return session.Session[Data]{}, false
}

// MustGetSession retrieves session from context or panics if not found.
// Use this when session existence is guaranteed by middleware.
func MustGetSession[Data any](ctx handler.Context) session.Session[Data] {
	sess, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession updates session in context.
// Use this to store modified session state during request processing.
func SetSession[Data any](ctx handler.Context, sess session.Session[Data]) {
	ctx.SetValue(sessionKey{}, sess)
}
