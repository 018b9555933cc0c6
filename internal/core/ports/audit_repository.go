package ports

import (
	"context"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// AuditRepository persists the append-only audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// List returns at most limit entries, newest first.
	List(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

// AuditRecorder accepts audit entries without blocking or failing the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
