package service

import (
	"context"
	"fmt"

	"github.com/rpdbs/research-databank/internal/core/access"
	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/ports"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 1000
)

// AuditService exposes the audit trail to administrators.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// List returns the newest audit entries first. limit is clamped to
// [1, maxAuditLimit]; zero or negative selects the default.
func (s *AuditService) List(ctx context.Context, sess domain.Session, limit int) ([]*domain.AuditEntry, error) {
	if !access.Authorize(sess, access.OpAudit, access.NoOwner).Allowed() {
		return nil, domain.ErrForbidden
	}

	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	return entries, nil
}
