// Package rango wires the rango site: a category and page bookmarking site that
// tracks visits per visitor and performs a client identity handshake on the home page.
//
// Routes:
//
//	GET /                 most liked categories, most viewed pages, visit count
//	GET /about            visit count of the current visitor
//	GET /category/{slug}  pages of a category
//	GET /health           backend pings
//	GET /health/live      liveness probe
//
// Every request except /health runs inside a server-side session carried by a
// signed cookie. The home page updates the visit state from the session, falling
// back to the visits and last_visit cookies, then asks the identity service for a
// client id and an auth token and stores both in the session when present.
// Malformed visit cookies fail the request with 400; identity failures are logged
// and the page is rendered without them.
//
// Usage:
//
//	app, err := rango.NewApp(ctx)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//	return app.Run(ctx)
//
// Configuration is read from the environment, see Config.
package rango
