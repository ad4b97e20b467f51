// Package middleware provides HTTP middleware for the handler.Context framework:
// request id assignment, structured request logging and server-side sessions.
//
// All middleware follow the same pattern: a generic default constructor, a
// WithConfig constructor for customization, an optional Skip func and context
// helpers for the values they store.
//
//	r.Use(
//		middleware.RequestID[*AppContext](),
//		middleware.LoggingWithLogger[*AppContext](log),
//		middleware.Session[*AppContext](sessionMgr, transport),
//	)
//
// # Request ID
//
// RequestID generates a UUID per request, stores it in the context and echoes it
// in the X-Request-ID response header. GetRequestID reads it back, and Logging
// attaches it to every record.
//
// # Logging
//
// Logging emits one record per request after the response has been rendered,
// with method, path, status, bytes written and duration. 4xx responses and slow
// requests are logged at warn, 5xx and render errors at error. Header logging is
// opt-in and redacts credentials.
//
// # Session
//
// Session loads the session named by the transport (a fresh one when the cookie is
// missing, invalid or points to an expired session), exposes it through
// GetSession/SetSession and saves it after the handler returns, before the
// response is written, refreshing the cookie whenever the store was written.
// A fresh session is only stored, and its cookie only set, once the handler
// sets its data.
// Requests sharing a session id are serialized by the manager's lock.
package middleware
