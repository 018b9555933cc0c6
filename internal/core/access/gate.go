// Package access decides which operations a session may perform and which
// project rows it may see. It has no side effects.
package access

import "github.com/rpdbs/research-databank/internal/core/domain"

// Operation identifies a guarded action.
type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpExport Operation = "export"
	OpReport Operation = "report"
	OpAudit  Operation = "audit"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

// NoOwner is passed as ownerID for operations that do not target an existing row.
const NoOwner int64 = 0

// Authorize decides whether s may perform op on a record owned by ownerID.
// Unknown roles and operations are denied.
func Authorize(s domain.Session, op Operation, ownerID int64) Decision {
	switch s.Role {
	case domain.RoleAdmin:
		return Allow

	case domain.RoleUser:
		switch op {
		case OpList, OpExport, OpCreate:
			return Allow
		case OpUpdate, OpDelete:
			if ownerID != NoOwner && ownerID == s.AccountID {
				return Allow
			}
		}
		return Deny

	case domain.RoleViewer:
		switch op {
		case OpList, OpExport:
			return Allow
		}
		return Deny
	}
	return Deny
}

// Scope returns the owner filter for row visibility. When scoped is false the
// session sees every project.
func Scope(s domain.Session) (ownerID int64, scoped bool) {
	if s.Role == domain.RoleUser {
		return s.AccountID, true
	}
	return NoOwner, false
}

// MutationScope returns the owner constraint applied to update and delete
// queries: users may only touch their own rows, admins any row.
func MutationScope(s domain.Session) int64 {
	if s.Role == domain.RoleAdmin {
		return NoOwner
	}
	return s.AccountID
}
