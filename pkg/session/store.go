package session

import "context"

// Store persists sessions.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get returns the session for a cookie token.
	// Returns ErrNotFound or ErrExpired.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by ID. Missing sessions are not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes expired sessions and reports how many.
	// Stores that expire entries on their own return 0.
	DeleteExpired(ctx context.Context) (int64, error)
}
