package domain

import "time"

// AuditAction is the verb recorded for a project mutation.
type AuditAction string

const (
	ActionAdd    AuditAction = "ADD"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

// AuditEntry is an immutable record of who changed which project and when.
// ProjectTitle is a snapshot taken at the time of the action, not a reference:
// later renames or deletions do not alter it.
type AuditEntry struct {
	ID           int64       `json:"id" bson:"_id"`
	Username     string      `json:"username" bson:"username"`
	Role         Role        `json:"role" bson:"role"`
	Action       AuditAction `json:"action" bson:"action"`
	ProjectID    int64       `json:"project_id" bson:"project_id"`
	ProjectTitle string      `json:"project_title" bson:"project_title"`
	Timestamp    time.Time   `json:"timestamp" bson:"timestamp"`
}

// NewAuditEntry builds an entry for the given session and project with a
// second-resolution UTC timestamp.
func NewAuditEntry(s Session, action AuditAction, p *Project, now time.Time) AuditEntry {
	return AuditEntry{
		Username:     s.Username,
		Role:         s.Role,
		Action:       action,
		ProjectID:    p.ID,
		ProjectTitle: p.Title,
		Timestamp:    now.UTC().Truncate(time.Second),
	}
}
