package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// Session is a server-side session keyed by an opaque identifier.
// The Data type parameter carries application-specific state.
type Session[Data any] struct {
	// ID is the opaque session identifier handed to the client (32 random bytes, base64url).
	ID string `json:"id"`

	// Version is incremented on every successful save and guards against lost updates.
	// Zero means the session has never been stored.
	Version int64 `json:"version"`

	Data Data `json:"data"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// isModified tracks if the session needs saving
	isModified bool
}

// New creates a fresh session with a generated identifier. It is not stored
// until its data is set.
func New[Data any](ttl time.Duration) (Session[Data], error) {
	id, err := generateID()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrIDGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:        id,
		Data:      *new(Data),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetData replaces the session data and marks the session for saving.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.isModified = true
}

// IsNew returns true if the session has never been stored.
func (s Session[Data]) IsNew() bool {
	return s.Version == 0
}

// IsModified returns true if the session has been modified and needs saving.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired returns true if the session has expired.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// generateID creates a cryptographically secure random identifier using 32 bytes (256 bits)
// encoded as base64 URL-safe string without padding.
func generateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
