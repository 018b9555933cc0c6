package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpdbs/research-databank/internal/core/access"
	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/ports"
	"github.com/rpdbs/research-databank/internal/pkg/metrics"
)

// ProjectService implements project use cases on top of the access gate.
type ProjectService struct {
	repo     ports.ProjectRepository
	accounts ports.AccountRepository
	audit    ports.AuditRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewProjectService(repo ports.ProjectRepository, accounts ports.AccountRepository, audit ports.AuditRecorder, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		repo:     repo,
		accounts: accounts,
		audit:    audit,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new project owned by the session's account.
func (s *ProjectService) Create(ctx context.Context, sess domain.Session, fields domain.ProjectFields) (*domain.Project, error) {
	if !access.Authorize(sess, access.OpCreate, access.NoOwner).Allowed() {
		return nil, domain.ErrForbidden
	}

	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	// The owner must exist at creation time.
	if _, err := s.accounts.FindByID(ctx, sess.AccountID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("create project: %w", err)
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.Project{
		OwnerID:       sess.AccountID,
		ProjectFields: fields,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.recordMutation(sess, domain.ActionAdd, created, now)
	return created, nil
}

// Get returns a single project visible to the session.
func (s *ProjectService) Get(ctx context.Context, sess domain.Session, id int64) (*domain.Project, error) {
	if !access.Authorize(sess, access.OpList, access.NoOwner).Allowed() {
		return nil, domain.ErrForbidden
	}
	owner, _ := access.Scope(sess)
	return s.repo.FindByID(ctx, id, owner)
}

// List returns the projects visible to the session, filtered and ordered by ID.
func (s *ProjectService) List(ctx context.Context, sess domain.Session, filter domain.ProjectFilter) ([]*domain.Project, error) {
	return s.visible(ctx, sess, access.OpList, filter)
}

// Export returns the same rows as List, gated by the export permission.
func (s *ProjectService) Export(ctx context.Context, sess domain.Session, filter domain.ProjectFilter) ([]*domain.Project, error) {
	return s.visible(ctx, sess, access.OpExport, filter)
}

// Update overwrites the editable fields of a project. Users may only update
// their own rows; any other row is reported as not found.
func (s *ProjectService) Update(ctx context.Context, sess domain.Session, id int64, fields domain.ProjectFields) (*domain.Project, error) {
	if !mayMutate(sess, access.OpUpdate) {
		return nil, domain.ErrForbidden
	}

	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	scope := access.MutationScope(sess)
	existing, err := s.repo.FindByID(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	if !access.Authorize(sess, access.OpUpdate, existing.OwnerID).Allowed() {
		return nil, domain.ErrProjectNotFound
	}

	now := s.now()
	updated := *existing
	updated.ProjectFields = fields
	updated.UpdatedAt = now

	if err := s.repo.Update(ctx, &updated, scope); err != nil {
		if !errors.Is(err, domain.ErrProjectNotFound) {
			s.logger.Error().Err(err).Int64("project_id", id).Msg("failed to update project")
		}
		return nil, err
	}

	s.recordMutation(sess, domain.ActionUpdate, &updated, now)
	return &updated, nil
}

// Delete permanently removes a project under the same ownership rule as Update.
func (s *ProjectService) Delete(ctx context.Context, sess domain.Session, id int64) error {
	if !mayMutate(sess, access.OpDelete) {
		return domain.ErrForbidden
	}

	scope := access.MutationScope(sess)
	existing, err := s.repo.FindByID(ctx, id, scope)
	if err != nil {
		return err
	}
	if !access.Authorize(sess, access.OpDelete, existing.OwnerID).Allowed() {
		return domain.ErrProjectNotFound
	}

	deleted, err := s.repo.Delete(ctx, id, scope)
	if err != nil {
		if !errors.Is(err, domain.ErrProjectNotFound) {
			s.logger.Error().Err(err).Int64("project_id", id).Msg("failed to delete project")
		}
		return err
	}

	s.recordMutation(sess, domain.ActionDelete, deleted, s.now())
	return nil
}

// Summary aggregates every project matching filter. Admin only.
func (s *ProjectService) Summary(ctx context.Context, sess domain.Session, filter domain.ProjectFilter) (*domain.ProjectSummary, error) {
	if !access.Authorize(sess, access.OpReport, access.NoOwner).Allowed() {
		return nil, domain.ErrForbidden
	}

	all, err := s.repo.List(ctx, access.NoOwner)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	summary := domain.Summarize(filter.Apply(all))
	return &summary, nil
}

func (s *ProjectService) visible(ctx context.Context, sess domain.Session, op access.Operation, filter domain.ProjectFilter) ([]*domain.Project, error) {
	if !access.Authorize(sess, op, access.NoOwner).Allowed() {
		return nil, domain.ErrForbidden
	}

	owner, _ := access.Scope(sess)
	projects, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return filter.Apply(projects), nil
}

func (s *ProjectService) recordMutation(sess domain.Session, action domain.AuditAction, p *domain.Project, now time.Time) {
	s.audit.Record(domain.NewAuditEntry(sess, action, p, now))
	metrics.ProjectMutationsTotal.WithLabelValues(string(action), string(sess.Role)).Inc()

	s.logger.Info().
		Int64("project_id", p.ID).
		Str("title", p.Title).
		Str("action", string(action)).
		Str("username", sess.Username).
		Msg("project mutated")
}

// mayMutate reports whether the role can perform op on at least its own rows.
// The per-row decision is taken once the owner is known.
func mayMutate(sess domain.Session, op access.Operation) bool {
	return sess.AccountID != access.NoOwner && access.Authorize(sess, op, sess.AccountID).Allowed()
}
