package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

type projectFixture struct {
	svc      *ProjectService
	repo     *stubProjectRepo
	audit    *recordingAudit
	admin    domain.Session
	u1       domain.Session
	u2       domain.Session
	viewer   domain.Session
	accounts *stubAccountRepo
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	accounts := newStubAccountRepo()
	mk := func(name string, role domain.Role) domain.Session {
		a, err := accounts.Create(context.Background(), &domain.Account{Username: name, Role: role})
		if err != nil {
			t.Fatalf("create account: %v", err)
		}
		return domain.Session{ID: name + "-session", AccountID: a.ID, Username: name, Role: role}
	}

	f := &projectFixture{
		repo:     newStubProjectRepo(),
		audit:    &recordingAudit{},
		accounts: accounts,
	}
	f.admin = mk("admin", domain.RoleAdmin)
	f.u1 = mk("u1", domain.RoleUser)
	f.u2 = mk("u2", domain.RoleUser)
	f.viewer = mk("viewer", domain.RoleViewer)
	f.svc = NewProjectService(f.repo, accounts, f.audit, zerolog.Nop())
	f.svc.now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return f
}

func soilMapping() domain.ProjectFields {
	return domain.ProjectFields{Title: "Soil Mapping", Budget: 50000, Status: domain.StatusNew}
}

func TestProjectService_Create_Success(t *testing.T) {
	f := newProjectFixture(t)

	p, err := f.svc.Create(context.Background(), f.u1, soilMapping())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.ID == 0 || p.OwnerID != f.u1.AccountID {
		t.Fatalf("unexpected project: %+v", p)
	}
	if len(f.audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(f.audit.entries))
	}
	e := f.audit.entries[0]
	if e.Action != domain.ActionAdd || e.Username != "u1" || e.ProjectTitle != "Soil Mapping" || e.ProjectID != p.ID {
		t.Fatalf("unexpected audit entry: %+v", e)
	}
}

func TestProjectService_Create_ViewerForbidden(t *testing.T) {
	f := newProjectFixture(t)

	if _, err := f.svc.Create(context.Background(), f.viewer, soilMapping()); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(f.repo.byID) != 0 || len(f.audit.entries) != 0 {
		t.Fatalf("viewer create must have no side effects")
	}
}

func TestProjectService_Create_ValidationError(t *testing.T) {
	f := newProjectFixture(t)

	fields := soilMapping()
	fields.Budget = -10
	if _, err := f.svc.Create(context.Background(), f.u1, fields); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(f.audit.entries) != 0 {
		t.Fatalf("failed create must not be audited")
	}
}

func TestProjectService_Create_UnknownOwnerRejected(t *testing.T) {
	f := newProjectFixture(t)
	ghost := domain.Session{AccountID: 404, Username: "ghost", Role: domain.RoleUser}

	if _, err := f.svc.Create(context.Background(), ghost, soilMapping()); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_Create_RepoError(t *testing.T) {
	f := newProjectFixture(t)
	f.repo.createErr = errors.New("disk full")

	if _, err := f.svc.Create(context.Background(), f.u1, soilMapping()); err == nil {
		t.Fatalf("expected error")
	}
	if len(f.audit.entries) != 0 {
		t.Fatalf("failed create must not be audited")
	}
}

func TestProjectService_List_UserSeesOwnOnly(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	mine1, _ := f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "Mine 1"})
	_, _ = f.svc.Create(ctx, f.u2, domain.ProjectFields{Title: "Theirs"})
	mine2, _ := f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "Mine 2"})

	got, err := f.svc.List(ctx, f.u1, domain.ProjectFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != mine1.ID || got[1].ID != mine2.ID {
		t.Fatalf("expected own projects in id order, got %+v", got)
	}
}

func TestProjectService_List_AdminAndViewerSeeAll(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "A"})
	_, _ = f.svc.Create(ctx, f.u2, domain.ProjectFields{Title: "B"})

	for _, sess := range []domain.Session{f.admin, f.viewer} {
		got, err := f.svc.List(ctx, sess, domain.ProjectFilter{})
		if err != nil {
			t.Fatalf("%s list failed: %v", sess.Role, err)
		}
		if len(got) != 2 {
			t.Fatalf("%s expected 2 projects, got %d", sess.Role, len(got))
		}
	}
}

func TestProjectService_List_AppliesFilter(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "Alpha Survey", Status: domain.StatusCompleted})
	_, _ = f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "Beta Study", Status: domain.StatusCompleted})
	_, _ = f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "Alpha Trial", Status: domain.StatusNew})

	got, err := f.svc.List(ctx, f.admin, domain.ProjectFilter{Search: "ALPHA", Status: domain.StatusCompleted})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Alpha Survey" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestProjectService_Get_UserCannotSeeOthers(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())

	if _, err := f.svc.Get(ctx, f.u2, p.ID); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if got, err := f.svc.Get(ctx, f.viewer, p.ID); err != nil || got.ID != p.ID {
		t.Fatalf("viewer should read any project: %v", err)
	}
}

func TestProjectService_Update_OwnerSucceeds(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())

	fields := soilMapping()
	fields.Status = domain.StatusCompleted
	updated, err := f.svc.Update(ctx, f.u1, p.ID, fields)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusCompleted || updated.OwnerID != f.u1.AccountID {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if f.repo.byID[p.ID].Status != domain.StatusCompleted {
		t.Fatalf("store not updated")
	}
}

func TestProjectService_Update_OtherUserIsNotFound(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())
	auditBefore := len(f.audit.entries)

	fields := soilMapping()
	fields.Title = "Hijacked"
	if _, err := f.svc.Update(ctx, f.u2, p.ID, fields); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if f.repo.byID[p.ID].Title != "Soil Mapping" {
		t.Fatalf("project must be unchanged")
	}
	if len(f.audit.entries) != auditBefore {
		t.Fatalf("rejected update must not be audited")
	}
}

func TestProjectService_Update_ViewerForbidden(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())

	if _, err := f.svc.Update(ctx, f.viewer, p.ID, soilMapping()); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_Update_AdminAnyProject(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())

	fields := soilMapping()
	fields.Remarks = "reviewed"
	updated, err := f.svc.Update(ctx, f.admin, p.ID, fields)
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.OwnerID != f.u1.AccountID {
		t.Fatalf("admin update must not change ownership")
	}
	last := f.audit.entries[len(f.audit.entries)-1]
	if last.Username != "admin" || last.Role != domain.RoleAdmin || last.Action != domain.ActionUpdate {
		t.Fatalf("unexpected audit entry: %+v", last)
	}
}

func TestProjectService_Update_MissingProject(t *testing.T) {
	f := newProjectFixture(t)

	if _, err := f.svc.Update(context.Background(), f.admin, 999, soilMapping()); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Delete_OtherUserIsNotFound(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())

	if err := f.svc.Delete(ctx, f.u2, p.ID); err != domain.ErrProjectNotFound {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, ok := f.repo.byID[p.ID]; !ok {
		t.Fatalf("project must still exist")
	}
}

func TestProjectService_Delete_OwnerSucceeds(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())

	if err := f.svc.Delete(ctx, f.u1, p.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	last := f.audit.entries[len(f.audit.entries)-1]
	if last.Action != domain.ActionDelete || last.ProjectTitle != "Soil Mapping" {
		t.Fatalf("unexpected audit entry: %+v", last)
	}
}

func TestProjectService_Summary(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "A", Budget: 100, Status: domain.StatusNew, StartDate: "2023-01-01"})
	_, _ = f.svc.Create(ctx, f.u2, domain.ProjectFields{Title: "B", Budget: 250.25, Status: domain.StatusCompleted, StartDate: "2024-01-01"})
	_, _ = f.svc.Create(ctx, f.u2, domain.ProjectFields{Title: "C", Budget: 10, Status: domain.StatusCompleted, StartDate: "2024-05-01"})

	all, err := f.svc.Summary(ctx, f.admin, domain.ProjectFilter{})
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if all.Total != 3 || all.TotalBudget != 360.25 || all.ByStatus[domain.StatusCompleted] != 2 {
		t.Fatalf("unexpected summary: %+v", all)
	}

	y2024, err := f.svc.Summary(ctx, f.admin, domain.ProjectFilter{Year: 2024})
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if y2024.Total != 2 || y2024.ByStatus[domain.StatusNew] != 0 {
		t.Fatalf("unexpected 2024 summary: %+v", y2024)
	}

	if _, err := f.svc.Summary(ctx, f.u1, domain.ProjectFilter{}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for user, got %v", err)
	}
}

func TestProjectService_Export_RespectsScope(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Create(ctx, f.u1, domain.ProjectFields{Title: "A"})
	_, _ = f.svc.Create(ctx, f.u2, domain.ProjectFields{Title: "B"})

	got, err := f.svc.Export(ctx, f.u2, domain.ProjectFilter{})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "B" {
		t.Fatalf("unexpected export rows: %+v", got)
	}
}

// Soil Mapping walkthrough: create, scoped reads, rejected foreign mutation,
// owner update, admin delete, audit history survives.
func TestProjectService_SoilMappingScenario(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, f.u1, soilMapping())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	own, _ := f.svc.List(ctx, f.u1, domain.ProjectFilter{})
	if len(own) != 1 || own[0].ID != p.ID {
		t.Fatalf("u1 should see its project")
	}
	all, _ := f.svc.List(ctx, f.admin, domain.ProjectFilter{})
	if len(all) != 1 || all[0].ID != p.ID {
		t.Fatalf("admin should see the project")
	}

	if _, err := f.svc.Update(ctx, f.u2, p.ID, soilMapping()); err != domain.ErrProjectNotFound {
		t.Fatalf("u2 update: expected ErrProjectNotFound, got %v", err)
	}
	if err := f.svc.Delete(ctx, f.u2, p.ID); err != domain.ErrProjectNotFound {
		t.Fatalf("u2 delete: expected ErrProjectNotFound, got %v", err)
	}

	completed := soilMapping()
	completed.Status = domain.StatusCompleted
	if _, err := f.svc.Update(ctx, f.u1, p.ID, completed); err != nil {
		t.Fatalf("u1 update: %v", err)
	}

	if err := f.svc.Delete(ctx, f.admin, p.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	all, _ = f.svc.List(ctx, f.admin, domain.ProjectFilter{})
	if len(all) != 0 {
		t.Fatalf("project should be gone, got %d", len(all))
	}

	want := []struct {
		action domain.AuditAction
		user   string
	}{
		{domain.ActionAdd, "u1"},
		{domain.ActionUpdate, "u1"},
		{domain.ActionDelete, "admin"},
	}
	if len(f.audit.entries) != len(want) {
		t.Fatalf("expected %d audit entries, got %d", len(want), len(f.audit.entries))
	}
	for i, w := range want {
		e := f.audit.entries[i]
		if e.Action != w.action || e.Username != w.user || e.ProjectTitle != "Soil Mapping" {
			t.Fatalf("entry %d: unexpected %+v", i, e)
		}
	}
}

func TestProjectService_AuditSnapshotSurvivesRename(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p, _ := f.svc.Create(ctx, f.u1, soilMapping())

	renamed := soilMapping()
	renamed.Title = "Soil Mapping Phase 2"
	if _, err := f.svc.Update(ctx, f.u1, p.ID, renamed); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if f.audit.entries[0].ProjectTitle != "Soil Mapping" {
		t.Fatalf("past entry changed: %q", f.audit.entries[0].ProjectTitle)
	}
	if f.audit.entries[1].ProjectTitle != "Soil Mapping Phase 2" {
		t.Fatalf("update entry should carry new title, got %q", f.audit.entries[1].ProjectTitle)
	}
}
