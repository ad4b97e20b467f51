// Package router provides a generic HTTP router with typed contexts, middleware
// composition and centralized error handling, built on the pattern matcher of
// net/http.ServeMux.
//
// # Basic Usage
//
//	r := router.New[*router.Context]()
//
//	r.Get("/{$}", index)
//	r.Get("/about", about)
//	r.Get("/category/{slug}", showCategory)
//
//	http.ListenAndServe(":8080", r)
//
// Patterns use ServeMux syntax. A trailing slash matches the whole subtree, so the
// site root is registered as "/{$}". Path wildcards are read with ctx.Param:
//
//	func showCategory(ctx *router.Context) handler.Response {
//		slug := ctx.Param("slug")
//		...
//	}
//
// # Custom Contexts
//
// Any type implementing handler.Context can be used. Types other than *Context
// require a factory:
//
//	r := router.New[*AppContext](
//		router.WithContextFactory(func(w http.ResponseWriter, r *http.Request) *AppContext {
//			return &AppContext{Context: router.NewContext(w, r)}
//		}),
//		router.WithErrorHandler(response.ErrorHandler[*AppContext]),
//	)
//
// # Middleware
//
// Use registers router-wide middleware and must be called before any route.
// With and Group create inline routers whose middleware applies only to the routes
// registered through them.
//
//	r.Use(middleware.RequestID[*AppContext](), middleware.Logging[*AppContext](log))
//	r.With(adminOnly).Get("/admin", dashboard)
//
// # Errors
//
// Errors returned by a Response, unmatched paths (ErrNotFound), unsupported methods
// (ErrMethodNotAllowed, with an Allow header) and recovered panics (PanicError) are
// all passed to the error handler. The default handler honors errors exposing
// StatusCode() int and never writes over a response that has already started.
package router
