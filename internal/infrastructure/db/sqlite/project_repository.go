package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type projectRow struct {
	ID             int64     `db:"id"`
	OwnerID        int64     `db:"owner_id"`
	Title          string    `db:"title"`
	Leader         string    `db:"leader"`
	Staff          string    `db:"staff"`
	StartDate      string    `db:"start_date"`
	CompletionDate string    `db:"completion_date"`
	Budget         float64   `db:"budget"`
	FundSource     string    `db:"fund_source"`
	Location       string    `db:"location"`
	ResearchType   string    `db:"research_type"`
	Status         string    `db:"status"`
	Remarks        string    `db:"remarks"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := toProjectRow(p)

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO projects (
			owner_id, title, leader, staff, start_date, completion_date, budget,
			fund_source, location, research_type, status, remarks, created_at, updated_at
		) VALUES (
			:owner_id, :title, :leader, :staff, :start_date, :completion_date, :budget,
			:fund_source, :location, :research_type, :status, :remarks, :created_at, :updated_at
		)`, row)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	row.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	query, args := ownerClause(`SELECT * FROM projects WHERE 1 = 1`, nil, ownerID)

	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, query+` ORDER BY id`, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]*domain.Project, len(rows))
	for i := range rows {
		projects[i] = rows[i].toDomain()
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id, ownerID int64) (*domain.Project, error) {
	query, args := ownerClause(`SELECT * FROM projects WHERE id = ?`, []any{id}, ownerID)

	var row projectRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project, ownerID int64) error {
	f := p.ProjectFields
	query, args := ownerClause(`
		UPDATE projects SET
			title = ?, leader = ?, staff = ?, start_date = ?, completion_date = ?, budget = ?,
			fund_source = ?, location = ?, research_type = ?, status = ?, remarks = ?, updated_at = ?
		WHERE id = ?`,
		[]any{
			f.Title, f.Leader, f.Staff, f.StartDate, f.CompletionDate, f.Budget,
			f.FundSource, f.Location, f.ResearchType, string(f.Status), f.Remarks, p.UpdatedAt.UTC(),
			p.ID,
		}, ownerID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete removes the row inside one write transaction and returns it as it
// was before deletion.
func (r *ProjectRepository) Delete(ctx context.Context, id, ownerID int64) (*domain.Project, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args := ownerClause(`SELECT * FROM projects WHERE id = ?`, []any{id}, ownerID)

	var row projectRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("delete project: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("delete project: %w", err)
	}
	return row.toDomain(), nil
}

func toProjectRow(p *domain.Project) projectRow {
	return projectRow{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Title:          p.Title,
		Leader:         p.Leader,
		Staff:          p.Staff,
		StartDate:      p.StartDate,
		CompletionDate: p.CompletionDate,
		Budget:         p.Budget,
		FundSource:     p.FundSource,
		Location:       p.Location,
		ResearchType:   p.ResearchType,
		Status:         string(p.Status),
		Remarks:        p.Remarks,
		CreatedAt:      p.CreatedAt.UTC(),
		UpdatedAt:      p.UpdatedAt.UTC(),
	}
}

func (r projectRow) toDomain() *domain.Project {
	return &domain.Project{
		ID:      r.ID,
		OwnerID: r.OwnerID,
		ProjectFields: domain.ProjectFields{
			Title:          r.Title,
			Leader:         r.Leader,
			Staff:          r.Staff,
			StartDate:      r.StartDate,
			CompletionDate: r.CompletionDate,
			Budget:         r.Budget,
			FundSource:     r.FundSource,
			Location:       r.Location,
			ResearchType:   r.ResearchType,
			Status:         domain.ProjectStatus(r.Status),
			Remarks:        r.Remarks,
		},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}
