package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	row := accountRow{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Role:         string(account.Role),
		CreatedAt:    account.CreatedAt.UTC(),
	}

	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO accounts (username, password_hash, role, created_at)
		 VALUES (:username, :password_hash, :role, :created_at)`, row)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	row.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.get(ctx, `SELECT * FROM accounts WHERE username = ?`, username)
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.get(ctx, `SELECT * FROM accounts WHERE id = ?`, id)
}

func (r *AccountRepository) get(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var row accountRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return row.toDomain(), nil
}

func (a accountRow) toDomain() *domain.Account {
	return &domain.Account{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Role:         domain.Role(a.Role),
		CreatedAt:    a.CreatedAt.UTC(),
	}
}
