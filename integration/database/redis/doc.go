// Package redis connects to Redis and provides a shared session store, so visitor
// sessions survive restarts and are visible to every app instance.
//
// Connect validates REDIS_URL (redis:// or rediss://), then pings the server with
// exponential backoff until it answers or REDIS_CONNECT_TIMEOUT elapses:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewSessionStore[rango.SessionData](client,
//		redis.WithKeyPrefix(cfg.SessionPrefix),
//	)
//
// SessionStore.Save is an optimistic compare-and-set on the session version. A
// stale write returns session.ErrConflict.
package redis
