package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

// AuditRepository stores audit entries in the append-only audit_log table.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

type auditRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Role         string    `db:"role"`
	Action       string    `db:"action"`
	ProjectID    int64     `db:"project_id"`
	ProjectTitle string    `db:"project_title"`
	Timestamp    time.Time `db:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO audit_log (username, role, action, project_id, project_title, timestamp)
		VALUES (:username, :role, :action, :project_id, :project_title, :timestamp)`,
		auditRow{
			Username:     entry.Username,
			Role:         string(entry.Role),
			Action:       string(entry.Action),
			ProjectID:    entry.ProjectID,
			ProjectTitle: entry.ProjectTitle,
			Timestamp:    entry.Timestamp.UTC(),
		})
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	var rows []auditRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM audit_log ORDER BY timestamp DESC, id DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	entries := make([]*domain.AuditEntry, len(rows))
	for i, row := range rows {
		entries[i] = &domain.AuditEntry{
			ID:           row.ID,
			Username:     row.Username,
			Role:         domain.Role(row.Role),
			Action:       domain.AuditAction(row.Action),
			ProjectID:    row.ProjectID,
			ProjectTitle: row.ProjectTitle,
			Timestamp:    row.Timestamp.UTC(),
		}
	}
	return entries, nil
}
