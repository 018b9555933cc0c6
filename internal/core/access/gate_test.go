package access

import (
	"testing"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

var (
	admin  = domain.Session{AccountID: 1, Username: "admin", Role: domain.RoleAdmin}
	userA  = domain.Session{AccountID: 2, Username: "u1", Role: domain.RoleUser}
	viewer = domain.Session{AccountID: 3, Username: "v", Role: domain.RoleViewer}
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		session domain.Session
		op      Operation
		owner   int64
		want    Decision
	}{
		{"admin updates any", admin, OpUpdate, 99, Allow},
		{"admin deletes any", admin, OpDelete, 2, Allow},
		{"admin reads audit", admin, OpAudit, NoOwner, Allow},
		{"admin report", admin, OpReport, NoOwner, Allow},

		{"user creates", userA, OpCreate, NoOwner, Allow},
		{"user lists", userA, OpList, NoOwner, Allow},
		{"user updates own", userA, OpUpdate, 2, Allow},
		{"user deletes own", userA, OpDelete, 2, Allow},
		{"user updates other", userA, OpUpdate, 5, Deny},
		{"user deletes other", userA, OpDelete, 5, Deny},
		{"user updates without owner", userA, OpUpdate, NoOwner, Deny},
		{"user audit", userA, OpAudit, NoOwner, Deny},
		{"user report", userA, OpReport, NoOwner, Deny},

		{"viewer lists", viewer, OpList, NoOwner, Allow},
		{"viewer exports", viewer, OpExport, NoOwner, Allow},
		{"viewer creates", viewer, OpCreate, NoOwner, Deny},
		{"viewer updates", viewer, OpUpdate, 3, Deny},
		{"viewer deletes", viewer, OpDelete, 3, Deny},
		{"viewer audit", viewer, OpAudit, NoOwner, Deny},

		{"unknown role", domain.Session{Role: "root"}, OpList, NoOwner, Deny},
		{"unknown op", userA, Operation("purge"), 2, Deny},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.session, tc.op, tc.owner); got != tc.want {
				t.Fatalf("Authorize(%s, %s, %d) = %v, want %v", tc.session.Role, tc.op, tc.owner, got, tc.want)
			}
		})
	}
}

func TestScope(t *testing.T) {
	if owner, scoped := Scope(userA); !scoped || owner != 2 {
		t.Fatalf("user should be scoped to self, got %d %v", owner, scoped)
	}
	if _, scoped := Scope(admin); scoped {
		t.Fatalf("admin should not be scoped")
	}
	if _, scoped := Scope(viewer); scoped {
		t.Fatalf("viewer should not be scoped")
	}
}

func TestMutationScope(t *testing.T) {
	if got := MutationScope(admin); got != NoOwner {
		t.Fatalf("admin mutation scope = %d", got)
	}
	if got := MutationScope(userA); got != 2 {
		t.Fatalf("user mutation scope = %d", got)
	}
}
