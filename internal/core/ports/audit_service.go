package ports

import (
	"context"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

type AuditService interface {
	List(ctx context.Context, s domain.Session, limit int) ([]*domain.AuditEntry, error)
}
