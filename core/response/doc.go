// Package response builds handler.Response values.
//
// Handlers return a response function instead of writing to the ResponseWriter;
// the router runs it and passes any returned error to its error handler.
//
//	func about(ctx *AppContext) handler.Response {
//		return response.NoStore(response.Templ(views.About(visits)))
//	}
//
// HTTPError values (ErrBadRequest, ErrNotFound...) carry their status:
//
//	return response.Error(response.ErrBadRequest.WithError(err))
package response
