package ports

import (
	"context"
	"time"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// SessionStore keeps server-side session records so that logout can revoke
// a token before it expires.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
