package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/rango/core/handler"
	"github.com/dmitrymomot/rango/core/logger"
)

// probeMethods are tried against the pattern table to build the Allow header of a 405.
var probeMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// table is the registration state shared by a router and its inline groups.
type table struct {
	mu        sync.RWMutex
	serveMux  *http.ServeMux
	routes    []Route
	hasRoutes bool
}

// mux is the private implementation of Router interface.
type mux[C handler.Context] struct {
	table        *table
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	parent       *mux[C] // for inline groups
	inline       bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		table:        &table{serveMux: http.NewServeMux()},
		errorHandler: defaultErrorHandler[C],
		logger:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	return m
}

// ServeHTTP implements http.Handler interface. Unmatched requests still pass
// through router level middleware before the 404 or 405 error is handled.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	root := m.root()

	if _, pattern := root.table.serveMux.Handler(r); pattern != "" {
		root.table.serveMux.ServeHTTP(w, r)
		return
	}

	if allowed := root.allowedMethods(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		root.serve(w, r, func(ctx C) handler.Response {
			return func(http.ResponseWriter, *http.Request) error { return ErrMethodNotAllowed }
		}, true)
		return
	}

	root.serve(w, r, func(ctx C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error { return ErrNotFound }
	}, true)
}

// serve runs fn with panic recovery and error handling.
// Router level middleware wraps fn when withMiddleware is set.
func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C], withMiddleware bool) {
	ww := &responseWriter{ResponseWriter: w}
	ctx := m.newContext(ww, r)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &PanicError{Value: p, Stack: debug.Stack()}

			if ww.status != 0 {
				m.logger.ErrorContext(r.Context(), "panic after response written",
					logger.Component("router"),
					logger.Error(panicErr),
					slog.String("stack", string(panicErr.Stack)),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(ww.status),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	if withMiddleware && len(m.middlewares) > 0 {
		fn = chain(m.middlewares, fn)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

// allowedMethods lists the methods registered for the request path.
func (m *mux[C]) allowedMethods(r *http.Request) []string {
	var allowed []string
	for _, method := range probeMethods {
		if method == r.Method {
			continue
		}
		probe := r.WithContext(r.Context())
		probe.Method = method
		if _, pattern := m.table.serveMux.Handler(probe); pattern != "" {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

// Get registers a handler for GET requests. HEAD requests are served by it as well.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Use appends middleware to the router.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if !m.inline {
		m.table.mu.RLock()
		sealed := m.table.hasRoutes
		m.table.mu.RUnlock()
		if sealed {
			panic("router: all middlewares must be defined before routes on a mux")
		}
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		inline:       true,
		parent:       m,
		table:        m.table,
		middlewares:  slices.Clone(middlewares),
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	m.table.mu.RLock()
	defer m.table.mu.RUnlock()
	return slices.Clone(m.table.routes)
}

func (m *mux[C]) root() *mux[C] {
	curr := m
	for curr.inline {
		curr = curr.parent
	}
	return curr
}

// handle registers fn with the inline middleware chain applied.
func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	// Prepend parent middlewares to maintain order
	var inlineMiddlewares []handler.Middleware[C]
	for curr := m; curr != nil && curr.inline; curr = curr.parent {
		inlineMiddlewares = append(slices.Clone(curr.middlewares), inlineMiddlewares...)
	}
	h := fn
	if len(inlineMiddlewares) > 0 {
		h = chain(inlineMiddlewares, fn)
	}

	full := pattern
	if method != "" {
		full = method + " " + pattern
	}

	root := m.root()
	m.table.mu.Lock()
	m.table.hasRoutes = true
	m.table.routes = append(m.table.routes, Route{Method: method, Pattern: pattern})
	m.table.mu.Unlock()

	m.table.serveMux.HandleFunc(full, func(w http.ResponseWriter, r *http.Request) {
		root.serve(w, r, h, true)
	})
}
