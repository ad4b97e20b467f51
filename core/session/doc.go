// Package session provides generic server-side session management.
//
// A session is identified by an opaque random id that travels to the client in a
// cookie (see core/sessiontransport). Application state lives in the generic Data
// field and never leaves the server.
//
//	type VisitorData struct {
//		Visits    int    `json:"visits"`
//		LastVisit string `json:"last_visit"`
//	}
//
//	mgr, err := session.NewManager[VisitorData](
//		session.WithStore[VisitorData](session.NewMemoryStore[VisitorData]()),
//		session.WithConfig[VisitorData](session.WithTTL(24*time.Hour)),
//	)
//
//	unlock := mgr.Lock(id)
//	defer unlock()
//
//	sess, err := mgr.Load(ctx, id)   // fresh session for empty/unknown/expired ids
//	sess.Data.Visits++
//	sess.SetData(sess.Data)
//	sess, err = mgr.Save(ctx, sess)  // ErrConflict if another writer got there first
//
// # Concurrency
//
// Two requests carrying the same session id are serialized inside a process by
// Manager.Lock. Across processes, every save bumps Session.Version and stores reject
// writes whose version does not follow the stored one with ErrConflict.
//
// # Stores
//
// MemoryStore ships with this package. The Redis store lives in
// integration/database/redis.
package session
