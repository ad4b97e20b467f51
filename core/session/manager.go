package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/rango/core/logger"
)

// Manager handles session lifecycle including creation, retrieval, expiration and
// serialized writes per session id.
type Manager[Data any] struct {
	store         Store[Data]
	ttl           time.Duration
	touchInterval time.Duration
	logger        *slog.Logger
	locks         *keyedMutex
}

// Option configures a Manager.
type Option[Data any] func(*Manager[Data])

// WithStore sets the persistence backend.
func WithStore[Data any](store Store[Data]) Option[Data] {
	return func(m *Manager[Data]) {
		m.store = store
	}
}

// WithConfig applies configuration options.
func WithConfig[Data any](opts ...ConfigOption) Option[Data] {
	return func(m *Manager[Data]) {
		cfg := Config{TTL: m.ttl, TouchInterval: m.touchInterval}
		for _, opt := range opts {
			opt(&cfg)
		}
		m.ttl = cfg.TTL
		m.touchInterval = cfg.TouchInterval
	}
}

// WithLogger sets the logger used for best-effort cleanup failures.
func WithLogger[Data any](log *slog.Logger) Option[Data] {
	return func(m *Manager[Data]) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewManager creates a session manager. A store is required.
func NewManager[Data any](opts ...Option[Data]) (*Manager[Data], error) {
	def := DefaultConfig()
	m := &Manager[Data]{
		ttl:           def.TTL,
		touchInterval: def.TouchInterval,
		logger:        logger.Discard(),
		locks:         newKeyedMutex(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		return nil, ErrNoStore
	}

	return m, nil
}

// NewFromConfig creates a manager from configuration. Zero config values keep defaults,
// options passed after the config win.
func NewFromConfig[Data any](cfg Config, opts ...Option[Data]) (*Manager[Data], error) {
	var configOpts []ConfigOption
	if cfg.TTL > 0 {
		configOpts = append(configOpts, WithTTL(cfg.TTL))
	}
	if cfg.TouchInterval > 0 {
		configOpts = append(configOpts, WithTouchInterval(cfg.TouchInterval))
	}

	return NewManager(append([]Option[Data]{WithConfig[Data](configOpts...)}, opts...)...)
}

// Load returns the session for id, or a fresh unsaved session when id is empty,
// unknown or expired. Store failures other than ErrNotFound are returned.
func (m *Manager[Data]) Load(ctx context.Context, id string) (Session[Data], error) {
	if id == "" {
		return New[Data](m.ttl)
	}

	sess, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New[Data](m.ttl)
	}
	if err != nil {
		return Session[Data]{}, err
	}

	if sess.IsExpired() {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			m.logger.WarnContext(ctx, "failed to delete expired session",
				logger.Component("session"),
				logger.SessionID(sess.ID),
				logger.Error(err),
			)
		}
		return New[Data](m.ttl)
	}

	return sess, nil
}

// Save persists the session when it is modified or, for a stored session, when
// its touch interval has elapsed, extending its expiration. A new session whose
// data was never set is not stored. Returns the stored session with the bumped version.
// A concurrent write of the same session yields ErrConflict.
func (m *Manager[Data]) Save(ctx context.Context, sess Session[Data]) (Session[Data], error) {
	now := time.Now()
	if !sess.IsModified() && (sess.IsNew() || now.Sub(sess.UpdatedAt) < m.touchInterval) {
		return sess, nil
	}

	next := sess
	next.Version++
	next.UpdatedAt = now
	next.ExpiresAt = now.Add(m.ttl)
	next.isModified = false

	if err := m.store.Save(ctx, next); err != nil {
		if errors.Is(err, ErrConflict) {
			return sess, err
		}
		return sess, errors.Join(ErrSaveSession, err)
	}

	return next, nil
}

// Delete removes the session from the store.
func (m *Manager[Data]) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// Lock serializes work on a single session id within this process.
// The returned function releases the lock and must be called exactly once.
func (m *Manager[Data]) Lock(id string) (unlock func()) {
	return m.locks.lock(id)
}

// TTL returns the session time-to-live duration.
func (m *Manager[Data]) TTL() time.Duration {
	return m.ttl
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedEntry)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			k.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(k.locks, key)
			}
			k.mu.Unlock()
		})
	}
}

// size reports tracked keys; used by tests.
func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
