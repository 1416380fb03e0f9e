package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// UserRepository defines persistence access for panel users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id string) error
	ListNotifiable(ctx context.Context, companyID string) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, company_id, name, email, password_hash, role, active, last_login, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, company_id, name, email, password_hash, role, active, last_login, created_at, updated_at
        FROM users WHERE email=$1 AND active=true`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE users SET last_login=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListNotifiable returns the company's active users plus all active admins,
// the audience for alert broadcasts.
func (r *userRepository) ListNotifiable(ctx context.Context, companyID string) ([]domain.User, error) {
	const query = `
        SELECT id, company_id, name, email, password_hash, role, active, last_login, created_at, updated_at
        FROM users WHERE (company_id=$1 OR role=$2) AND active=true`
	rows, err := r.pool.Query(ctx, query, companyID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.CompanyID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.CompanyID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.Active,
			&user.LastLogin,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
