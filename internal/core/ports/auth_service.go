package ports

import (
	"context"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (string, *domain.Account, error)
	// PublicView issues a password-less viewer session when enabled by configuration.
	PublicView(ctx context.Context) (string, *domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}
