package service

import (
	"context"
	"sort"
	"time"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	users  map[string]*domain.Account
	nextID int64
	// findErr, when set, is returned by FindByUsername for every call.
	findErr error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{users: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if _, exists := r.users[a.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneAccount(a)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[username]; ok {
		return cloneAccount(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneAccount(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	sessions map[string]domain.Session
	ttls     map[string]time.Duration
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session), ttls: make(map[string]time.Duration)}
}

func (s *stubSessionStore) Save(_ context.Context, sess domain.Session, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[sess.ID] = sess
	s.ttls[sess.ID] = ttl
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	byID      map[int64]*domain.Project
	nextID    int64
	createErr error
	listErr   error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[int64]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	clone := *p
	return &clone
}

func (r *stubProjectRepo) visible(p *domain.Project, ownerID int64) bool {
	return ownerID == 0 || p.OwnerID == ownerID
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := cloneProject(p)
	stored.ID = r.nextID
	r.byID[stored.ID] = stored
	return cloneProject(stored), nil
}

func (r *stubProjectRepo) List(_ context.Context, ownerID int64) ([]*domain.Project, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Project, 0, len(r.byID))
	for _, p := range r.byID {
		if r.visible(p, ownerID) {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id, ownerID int64) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok || !r.visible(p, ownerID) {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project, ownerID int64) error {
	existing, ok := r.byID[p.ID]
	if !ok || !r.visible(existing, ownerID) {
		return domain.ErrProjectNotFound
	}
	existing.ProjectFields = p.ProjectFields
	existing.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id, ownerID int64) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok || !r.visible(p, ownerID) {
		return nil, domain.ErrProjectNotFound
	}
	delete(r.byID, id)
	return p, nil
}

// ---------------------------------------------------------------------------
// Audit
// ---------------------------------------------------------------------------

type recordingAudit struct {
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(e domain.AuditEntry) {
	a.entries = append(a.entries, e)
}

type stubAuditRepo struct {
	entries   []*domain.AuditEntry
	lastLimit int
	listErr   error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, limit int) ([]*domain.AuditEntry, error) {
	r.lastLimit = limit
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.AuditEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
