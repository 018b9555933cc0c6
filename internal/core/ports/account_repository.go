package ports

import (
	"context"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// AccountRepository defines the credential store.
type AccountRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	// Create returns domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
