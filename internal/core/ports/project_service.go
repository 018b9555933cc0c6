package ports

import (
	"context"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// ProjectService defines use-case operations for projects. Every call takes
// the caller's session explicitly.
type ProjectService interface {
	Create(ctx context.Context, s domain.Session, fields domain.ProjectFields) (*domain.Project, error)
	Get(ctx context.Context, s domain.Session, id int64) (*domain.Project, error)
	List(ctx context.Context, s domain.Session, filter domain.ProjectFilter) ([]*domain.Project, error)
	// Export returns the same rows as List, gated by the export operation.
	Export(ctx context.Context, s domain.Session, filter domain.ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, s domain.Session, id int64, fields domain.ProjectFields) (*domain.Project, error)
	Delete(ctx context.Context, s domain.Session, id int64) error
	Summary(ctx context.Context, s domain.Session, filter domain.ProjectFilter) (*domain.ProjectSummary, error)
}
