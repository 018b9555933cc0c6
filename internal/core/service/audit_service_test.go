package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

func TestAuditService_List_AdminNewestFirst(t *testing.T) {
	repo := &stubAuditRepo{}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		_ = repo.Insert(context.Background(), &domain.AuditEntry{ProjectTitle: title, Timestamp: base.Add(time.Duration(i) * time.Minute)})
	}
	svc := NewAuditService(repo)

	got, err := svc.List(context.Background(), domain.Session{AccountID: 1, Role: domain.RoleAdmin}, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 || got[0].ProjectTitle != "third" || got[1].ProjectTitle != "second" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestAuditService_List_DeniedForNonAdmins(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{})

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleViewer} {
		if _, err := svc.List(context.Background(), domain.Session{AccountID: 2, Role: role}, 10); err != domain.ErrForbidden {
			t.Fatalf("%s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestAuditService_List_ClampsLimit(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo)
	admin := domain.Session{AccountID: 1, Role: domain.RoleAdmin}

	_, _ = svc.List(context.Background(), admin, 0)
	if repo.lastLimit != defaultAuditLimit {
		t.Fatalf("expected default limit, got %d", repo.lastLimit)
	}
	_, _ = svc.List(context.Background(), admin, 50000)
	if repo.lastLimit != maxAuditLimit {
		t.Fatalf("expected max limit, got %d", repo.lastLimit)
	}
}

func TestAuditService_List_RepoError(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{listErr: errors.New("boom")})

	if _, err := svc.List(context.Background(), domain.Session{AccountID: 1, Role: domain.RoleAdmin}, 10); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSeedAccounts_IdempotentPerUsername(t *testing.T) {
	repo := newStubAccountRepo()
	ctx := context.Background()

	// A user registered "admin" with their own password before seeding ran.
	existing, _ := repo.Create(ctx, &domain.Account{Username: "admin", PasswordHash: "user-chosen", Role: domain.RoleAdmin})

	seeds := []SeedAccount{
		{Username: "admin", Password: "default", Role: domain.RoleAdmin},
		{Username: "viewer", Password: "viewpass", Role: domain.RoleViewer},
	}

	created, err := SeedAccounts(ctx, repo, seeds, zerolog.Nop())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if len(created) != 1 || created[0] != "viewer" {
		t.Fatalf("expected only viewer created, got %v", created)
	}
	if repo.users["admin"].PasswordHash != "user-chosen" || repo.users["admin"].ID != existing.ID {
		t.Fatalf("existing account must not be overwritten")
	}

	created, err = SeedAccounts(ctx, repo, seeds, zerolog.Nop())
	if err != nil || len(created) != 0 {
		t.Fatalf("second run should create nothing, got %v (%v)", created, err)
	}
	if len(repo.users) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(repo.users))
	}
}

func TestSeedAccounts_GeneratesPasswordWhenEmpty(t *testing.T) {
	repo := newStubAccountRepo()

	created, err := SeedAccounts(context.Background(), repo, []SeedAccount{{Username: "admin", Role: domain.RoleAdmin}}, zerolog.Nop())
	if err != nil || len(created) != 1 {
		t.Fatalf("seed failed: %v %v", created, err)
	}
	if repo.users["admin"].PasswordHash == "" {
		t.Fatalf("expected a hashed generated password")
	}
}

func TestSeedAccounts_RejectsUnknownRole(t *testing.T) {
	_, err := SeedAccounts(context.Background(), newStubAccountRepo(), []SeedAccount{{Username: "x", Role: "root"}}, zerolog.Nop())
	if err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
