package ports

import (
	"context"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
//
// Every ownerID parameter is an optional constraint: 0 means any owner, a
// non-zero value restricts the query to rows created by that account. A row
// outside the constraint is reported as domain.ErrProjectNotFound.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// List returns projects ordered by ID ascending.
	List(ctx context.Context, ownerID int64) ([]*domain.Project, error)
	FindByID(ctx context.Context, id, ownerID int64) (*domain.Project, error)
	// Update overwrites the editable fields of p.ID. Last write wins.
	Update(ctx context.Context, p *domain.Project, ownerID int64) error
	// Delete removes the row and returns it as it was before deletion.
	Delete(ctx context.Context, id, ownerID int64) (*domain.Project, error)
}
