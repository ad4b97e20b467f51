package session

import "errors"

var (
	ErrNoStore = errors.New("session: store is required")

	// ErrNotFound means the id is unknown or the session has expired.
	ErrNotFound = errors.New("session: not found")
	// ErrConflict means another request saved the session after it was loaded.
	ErrConflict = errors.New("session: version conflict")

	ErrIDGeneration  = errors.New("session: generate id")
	ErrSaveSession   = errors.New("session: save")
	ErrDeleteSession = errors.New("session: delete")
)
