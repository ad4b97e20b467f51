// Package sessiontransport moves session identifiers between the server and HTTP clients.
//
// The core/session package is transport agnostic: it stores sessions by id and knows
// nothing about requests. Cookie bridges the two by carrying the id in an HMAC-signed
// cookie managed by core/cookie.
//
// Example usage:
//
//	cookieMgr, _ := cookie.New([]string{"your-secret-key-at-least-32-chars"})
//	transport := sessiontransport.NewCookie(cookieMgr, "__session")
//
//	id, err := transport.Extract(r)
//	if errors.Is(err, sessiontransport.ErrNoToken) {
//		// first visit
//	}
//
//	sess, _ := sessionMgr.Load(ctx, id)
//	// ... mutate and save ...
//	_ = transport.Embed(w, sess.ID, sess.ExpiresAt)
//
// # Error Handling
//
//   - ErrNoToken: no session cookie in the request
//   - ErrInvalidToken: cookie present but unsigned or tampered with
//   - ErrExpired: attempt to embed an expired session
//
// Callers typically treat both extraction errors as "no session" and start a fresh one.
package sessiontransport
