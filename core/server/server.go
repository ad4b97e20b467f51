package server

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/rango/core/logger"
)

// Server runs an http.Server with graceful shutdown.
type Server struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	tlsConfig       *tls.Config
	logger          *slog.Logger

	mu     sync.Mutex
	active *http.Server
	bound  string
}

// Option configures a Server.
type Option func(*Server)

// WithTimeouts sets the read, write and idle timeouts. Zero values are ignored.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
		if idle > 0 {
			s.idleTimeout = idle
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown. Zero is ignored.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

func WithTLS(cfg *tls.Config) Option {
	return func(s *Server) { s.tlsConfig = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server listening on addr once started.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:            addr,
		readTimeout:     15 * time.Second,
		writeTimeout:    15 * time.Second,
		idleTimeout:     time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the bound address while running, the configured one otherwise.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != "" {
		return s.bound
	}
	return s.addr
}

// Run returns an errgroup function serving h until ctx is canceled, then
// shutting down gracefully. Cancellation is not reported as an error.
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		srv, ln, err := s.listen(h)
		if err != nil {
			return err
		}

		s.logger.InfoContext(ctx, "server started",
			logger.Component("server"),
			slog.String("addr", ln.Addr().String()),
			slog.Bool("tls", s.tlsConfig != nil),
		)

		serveErr := make(chan error, 1)
		go func() { serveErr <- srv.Serve(ln) }()

		select {
		case err := <-serveErr:
			s.release(srv)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			err := s.Stop()
			<-serveErr
			return err
		}
	}
}

// Stop shuts the running server down within the shutdown timeout. A stopped server is a no-op.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.active
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	defer s.release(srv)

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown failed", logger.Component("server"), logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}
	s.logger.Info("server stopped", logger.Component("server"))
	return nil
}

func (s *Server) listen(h http.Handler) (*http.Server, net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil, nil, ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, nil, errors.Join(ErrListen, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}

	s.active = &http.Server{
		Handler:      h,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	s.bound = ln.Addr().String()
	return s.active, ln, nil
}

func (s *Server) release(srv *http.Server) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == srv {
		s.active = nil
		s.bound = ""
	}
}
