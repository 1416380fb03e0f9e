package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderFilter captures order listing parameters. CompanyID is always set
// by the caller from the resolved request scope.
type OrderFilter struct {
	CompanyID   string
	Status      *domain.OrderStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	MarkPrinted(ctx context.Context, id string) error
	AddHistory(ctx context.Context, entry *domain.OrderHistory) error
	ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, company_id, customer_phone, customer_name, customer_address, customer_district,
               items, subtotal, delivery_fee, discount, total, payment_method, change_for,
               notes, status, printed, printed_at, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO orders (company_id, customer_phone, customer_name, customer_address, customer_district,
            items, subtotal, delivery_fee, discount, total, payment_method, change_for, notes, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.CompanyID,
		order.CustomerPhone,
		order.CustomerName,
		order.CustomerAddress,
		order.CustomerDistrict,
		items,
		order.Subtotal,
		order.DeliveryFee,
		order.Discount,
		order.Total,
		order.PaymentMethod,
		order.ChangeFor,
		order.Notes,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id=$1`, orderColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanOrderRow(row)
}

func (r *orderRepository) ListWithFilter(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	clauses := []string{"company_id=$1"}
	args := []any{filter.CompanyID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT %d`,
		orderColumns, strings.Join(clauses, " AND "), limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	return result, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) MarkPrinted(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET printed=true, printed_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) AddHistory(ctx context.Context, entry *domain.OrderHistory) error {
	const query = `
        INSERT INTO order_history (order_id, old_status, new_status, note, user_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.OrderID,
		entry.OldStatus,
		entry.NewStatus,
		entry.Note,
		entry.UserID,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *orderRepository) ListHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	const query = `
        SELECT id, order_id, old_status, new_status, note, user_id, created_at
        FROM order_history WHERE order_id=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrderHistory
	for rows.Next() {
		var entry domain.OrderHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.Note,
			&entry.UserID,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanOrderRow(row scannable) (*domain.Order, error) {
	var order domain.Order
	var items []byte
	if err := row.Scan(
		&order.ID,
		&order.CompanyID,
		&order.CustomerPhone,
		&order.CustomerName,
		&order.CustomerAddress,
		&order.CustomerDistrict,
		&items,
		&order.Subtotal,
		&order.DeliveryFee,
		&order.Discount,
		&order.Total,
		&order.PaymentMethod,
		&order.ChangeFor,
		&order.Notes,
		&order.Status,
		&order.Printed,
		&order.PrintedAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, err
		}
	}
	return &order, nil
}
