// Package session persists bearer credentials for the secured layer and
// geometry services between CLI runs.
//
// A session holds the access token obtained from the authentication
// provider together with its expiry. The [Store] interface abstracts the
// storage backend; [FileStore] keeps one JSON file per session in a config
// directory, which is all the CLI needs.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Session stores an authenticated credential.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	Subject     string    `json:"subject,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error
}

// New creates a session for the given access token.
func New(accessToken, subject string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		AccessToken: accessToken,
		Subject:     subject,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}
}
