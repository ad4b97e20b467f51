package handler

import "net/http"

// Response writes the reply for a request. A returned error is passed to the
// router's ErrorHandler, which renders it unless the response already wrote a status.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request through the app-defined context type C.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders an error returned by a Response or raised by the router.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware decorates a HandlerFunc.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
