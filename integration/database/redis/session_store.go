package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/rango/core/session"
)

// SessionStore persists sessions as JSON values that expire with the session.
// Save is a compare-and-set on the stored version using WATCH/MULTI, so
// concurrent writers in different processes cannot overwrite each other.
type SessionStore[Data any] struct {
	client redis.UniversalClient
	prefix string
}

var _ session.Store[struct{}] = (*SessionStore[struct{}])(nil)

// SessionStoreOption configures a SessionStore.
type SessionStoreOption func(*sessionStoreOptions)

type sessionStoreOptions struct {
	prefix string
}

// WithKeyPrefix sets the key namespace (default "session:").
func WithKeyPrefix(prefix string) SessionStoreOption {
	return func(o *sessionStoreOptions) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// NewSessionStore creates a store on client.
func NewSessionStore[Data any](client redis.UniversalClient, opts ...SessionStoreOption) *SessionStore[Data] {
	o := sessionStoreOptions{prefix: "session:"}
	for _, opt := range opts {
		opt(&o)
	}
	return &SessionStore[Data]{client: client, prefix: o.prefix}
}

// Get loads a session by id.
func (s *SessionStore[Data]) Get(ctx context.Context, id string) (session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Session[Data]{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session[Data]{}, fmt.Errorf("get session: %w", err)
	}

	var sess session.Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return session.Session[Data]{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// Save writes sess if the stored version is sess.Version-1.
// An already expired session is removed instead.
func (s *SessionStore[Data]) Save(ctx context.Context, sess session.Session[Data]) error {
	key := s.key(sess.ID)
	ttl := time.Until(sess.ExpiresAt)
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if sess.Version != current+1 {
			return session.ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if ttl <= 0 {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrConflict), errors.Is(err, redis.TxFailedErr):
		return session.ErrConflict
	default:
		return fmt.Errorf("save session: %w", err)
	}
}

// Delete removes the session.
func (s *SessionStore[Data]) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore[Data]) key(id string) string {
	return s.prefix + id
}

func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	raw, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var v struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("decode session version: %w", err)
	}
	return v.Version, nil
}
