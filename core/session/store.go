package session

import "context"

// Store defines the persistence interface for sessions.
// Implementations must handle concurrent access safely.
type Store[Data any] interface {
	// Get returns ErrNotFound when no session exists for id.
	Get(ctx context.Context, id string) (Session[Data], error)

	// Save persists sess only if the stored version equals sess.Version-1
	// (a missing session counts as version 0). Otherwise it returns ErrConflict.
	Save(ctx context.Context, sess Session[Data]) error

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
