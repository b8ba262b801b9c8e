package session

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound reports a missing or expired session record.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long a stored token stays usable after login.
const DefaultTTL = 12 * time.Hour

// Record is one persisted browser session.
type Record struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the record is no longer usable at now.
func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// Validate checks the fields every backend requires.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("session id is required")
	}
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("session token is required")
	}
	if r.ExpiresAt.IsZero() {
		return errors.New("session expiry is required")
	}
	return nil
}

// Backend persists session records. Get returns ErrNotFound for missing or
// expired records. Delete of a missing record is not an error.
type Backend interface {
	Get(ctx context.Context, id string) (Record, error)
	Put(ctx context.Context, record Record) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Sweeper is implemented by backends that must purge expired records
// themselves.
type Sweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
