package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// AlertRepository encapsulates alert persistence.
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Alert, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type alertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository instantiates repository.
func NewAlertRepository(pool *pgxpool.Pool) AlertRepository {
	return &alertRepository{pool: pool}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	const query = `
        INSERT INTO alerts (company_id, user_id, type, title, message, link)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		alert.CompanyID,
		alert.UserID,
		alert.Type,
		alert.Title,
		alert.Message,
		alert.Link,
	).Scan(&alert.ID, &alert.CreatedAt)
}

func (r *alertRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, company_id, user_id, type, title, message, link, read, created_at
        FROM alerts WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Alert
	for rows.Next() {
		var alert domain.Alert
		if err := rows.Scan(
			&alert.ID,
			&alert.CompanyID,
			&alert.UserID,
			&alert.Type,
			&alert.Title,
			&alert.Message,
			&alert.Link,
			&alert.Read,
			&alert.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, alert)
	}
	return result, rows.Err()
}

func (r *alertRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE user_id=$1 AND read=false`, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead updates only alerts addressed to the given user; the id alone
// is not enough.
func (r *alertRepository) MarkRead(ctx context.Context, id, userID string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE alerts SET read=true WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
