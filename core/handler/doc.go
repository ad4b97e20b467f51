// Package handler defines the request processing contracts shared by the router,
// middleware and application handlers.
//
// A handler receives a typed context and returns a Response, a deferred render
// function. Keeping rendering separate from business logic lets middleware wrap
// both halves: the decision made by the handler and the bytes written later.
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type ErrorHandler[C Context] func(ctx C, err error)
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Context extends context.Context with access to the request, the response writer,
// path parameters and request-scoped values. Applications embed it in their own
// context type:
//
//	type AppContext struct {
//		handler.Context
//		Session *session.Session[VisitorSession]
//	}
//
//	func about(ctx *AppContext) handler.Response {
//		return response.Templ(views.About(ctx.Session.Data.Visits))
//	}
//
// Middleware composes in registration order, the first registered runs outermost:
//
//	func Timing[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) handler.Response {
//				start := time.Now()
//				resp := next(ctx)
//				return func(w http.ResponseWriter, r *http.Request) error {
//					defer func() { log.Println(time.Since(start)) }()
//					return resp(w, r)
//				}
//			}
//		}
//	}
package handler
