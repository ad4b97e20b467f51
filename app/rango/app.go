package rango

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/rango/core/config"
	"github.com/dmitrymomot/rango/core/cookie"
	"github.com/dmitrymomot/rango/core/health"
	"github.com/dmitrymomot/rango/core/logger"
	"github.com/dmitrymomot/rango/core/response"
	"github.com/dmitrymomot/rango/core/router"
	"github.com/dmitrymomot/rango/core/server"
	"github.com/dmitrymomot/rango/core/session"
	"github.com/dmitrymomot/rango/core/sessiontransport"
	"github.com/dmitrymomot/rango/integration/database/redis"
	"github.com/dmitrymomot/rango/internal/catalog"
	"github.com/dmitrymomot/rango/internal/identity"
	"github.com/dmitrymomot/rango/internal/visit"
	"github.com/dmitrymomot/rango/middleware"
)

// sessionSweepInterval is how often expired sessions are purged from the memory store.
const sessionSweepInterval = 10 * time.Minute

// App wires the rango site together.
type App struct {
	config    Config
	logger    *slog.Logger
	router    router.Router[*Context]
	server    *server.Server
	cookie    *cookie.Manager
	transport *sessiontransport.Cookie
	session   *session.Manager[SessionData]
	memStore  *session.MemoryStore[SessionData]
	catalog   catalog.Repository
	identity  *identity.Client
	tracker   *visit.Tracker
	checks    health.Checks
	closers   []func() error
}

// AppOption configures an App.
type AppOption func(*App) error

// NewApp loads the configuration from the environment, applies opts and builds
// every component not supplied by an option.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{
		config: cfg,
		checks: health.Checks{},
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = NewLogger(app.config)
	}

	if err := app.init(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	app.router = app.routes()
	return app, nil
}

// NewLogger builds the application logger for the configured environment and level.
func NewLogger(cfg Config) *slog.Logger {
	if cfg.IsProduction() {
		return logger.New(logger.WithProduction(cfg.AppName), logger.WithLevelString(cfg.LogLevel))
	}
	return logger.New(logger.WithDevelopment(cfg.AppName), logger.WithLevelString(cfg.LogLevel))
}

func (a *App) init(ctx context.Context) error {
	if a.cookie == nil {
		cm, err := cookie.NewFromConfig(a.config.Cookie)
		if err != nil {
			return err
		}
		a.cookie = cm
	}
	if a.transport == nil {
		a.transport = sessiontransport.NewCookieFromConfig(a.config.SessionCookie, a.cookie)
	}

	if a.session == nil {
		store, err := a.sessionStore(ctx)
		if err != nil {
			return err
		}
		sm, err := session.NewFromConfig(a.config.Session,
			session.WithStore(store),
			session.WithLogger[SessionData](a.logger),
		)
		if err != nil {
			return err
		}
		a.session = sm
	}

	if a.catalog == nil {
		st, err := OpenStorage(ctx, a.config, a.logger)
		if err != nil {
			return err
		}
		a.catalog = st.Catalog
		a.checks["storage"] = st.Health
		a.closers = append(a.closers, st.Close)
	}

	if a.identity == nil && a.config.Identity.BaseURL != "" {
		ic, err := identity.NewFromConfig(a.config.Identity, identity.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.identity = ic
	}
	if a.identity == nil {
		a.logger.WarnContext(ctx, "identity service is not configured, handshake disabled",
			logger.Component("app"),
		)
	}

	if a.tracker == nil {
		a.tracker = visit.NewTracker(visit.WithLogger(a.logger))
	}

	if a.server == nil {
		s, err := server.NewFromConfig(a.config.Server, server.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.server = s
	}

	return nil
}

func (a *App) sessionStore(ctx context.Context) (session.Store[SessionData], error) {
	switch a.config.SessionStore {
	case SessionStoreRedis:
		client, err := redis.Connect(ctx, a.config.Redis)
		if err != nil {
			return nil, err
		}
		a.checks["redis"] = redis.Healthcheck(client)
		a.closers = append(a.closers, client.Close)
		return redis.NewSessionStore[SessionData](client, redis.WithKeyPrefix(a.config.Redis.SessionPrefix)), nil
	case SessionStoreMemory, "":
		a.memStore = session.NewMemoryStore[SessionData]()
		return a.memStore, nil
	default:
		return nil, errors.New("unknown session store: " + a.config.SessionStore)
	}
}

func (a *App) routes() router.Router[*Context] {
	r := router.New[*Context](
		router.WithContextFactory(newContext),
		router.WithErrorHandler(response.ErrorHandler[*Context]),
		router.WithLogger[*Context](a.logger),
	)

	r.Use(
		middleware.RequestID[*Context](),
		middleware.LoggingWithLogger[*Context](a.logger),
		middleware.SessionWithConfig(middleware.SessionConfig[*Context, SessionData]{
			Skip:      func(ctx *Context) bool { return strings.HasPrefix(ctx.Request().URL.Path, "/health") },
			Manager:   a.session,
			Transport: a.transport,
			Logger:    a.logger,
		}),
	)

	r.Get("/{$}", a.index)
	r.Get("/about", a.about)
	r.Get("/category/{slug}", a.showCategory)
	r.Get("/health", health.Readiness[*Context](a.logger, a.checks))
	r.Get("/health/live", health.Liveness[*Context])

	return r
}

// Handler returns the HTTP handler of the site.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))
	if a.memStore != nil {
		g.Go(a.sweepSessions(ctx))
	}
	return g.Wait()
}

func (a *App) sweepSessions(ctx context.Context) func() error {
	return func() error {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := a.memStore.DeleteExpired(ctx)
				if err != nil {
					a.logger.ErrorContext(ctx, "failed to purge expired sessions",
						logger.Component("session"),
						logger.Error(err),
					)
					continue
				}
				if n > 0 {
					a.logger.DebugContext(ctx, "expired sessions purged",
						logger.Component("session"),
						logger.Count("sessions", int(n)),
					)
				}
			}
		}
	}
}

// Close releases database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithCookieManager(cookie *cookie.Manager) AppOption {
	return func(app *App) error {
		if cookie == nil {
			return errors.New("cookie manager cannot be nil")
		}
		app.cookie = cookie
		return nil
	}
}

func WithSessionManager(session *session.Manager[SessionData]) AppOption {
	return func(app *App) error {
		if session == nil {
			return errors.New("session manager cannot be nil")
		}
		app.session = session
		return nil
	}
}

// WithCatalog sets the catalog repository. ping may be nil.
func WithCatalog(repo catalog.Repository, ping func(context.Context) error) AppOption {
	return func(app *App) error {
		if repo == nil {
			return errors.New("catalog repository cannot be nil")
		}
		app.catalog = repo
		if ping != nil {
			app.checks["storage"] = ping
		}
		return nil
	}
}

func WithIdentityClient(client *identity.Client) AppOption {
	return func(app *App) error {
		if client == nil {
			return errors.New("identity client cannot be nil")
		}
		app.identity = client
		return nil
	}
}

func WithTracker(tracker *visit.Tracker) AppOption {
	return func(app *App) error {
		if tracker == nil {
			return errors.New("tracker cannot be nil")
		}
		app.tracker = tracker
		return nil
	}
}
