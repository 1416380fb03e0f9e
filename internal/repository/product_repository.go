package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// ProductRepository encapsulates product persistence. Lookups by id are
// tenant-agnostic on purpose; ownership is enforced by the service layer
// after the load.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Product, error)
	ToggleAvailability(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (company_id, category_id, name, description, price, available, position)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		product.CompanyID,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.Available,
		product.Position,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET category_id=$1, name=$2, description=$3, price=$4,
            available=$5, position=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		product.CategoryID,
		product.Name,
		product.Description,
		product.Price,
		product.Available,
		product.Position,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, company_id, category_id, name, description, price, available, position, created_at, updated_at
        FROM products WHERE id=$1`
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.CompanyID,
		&product.CategoryID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Available,
		&product.Position,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Product, error) {
	const query = `
        SELECT p.id, p.company_id, p.category_id, p.name, p.description, p.price,
               p.available, p.position, p.created_at, p.updated_at, c.name
        FROM products p
        LEFT JOIN categories c ON p.category_id = c.id
        WHERE p.company_id=$1
        ORDER BY c.position, p.position`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.CompanyID,
			&product.CategoryID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.Available,
			&product.Position,
			&product.CreatedAt,
			&product.UpdatedAt,
			&product.CategoryName,
		); err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

func (r *productRepository) ToggleAvailability(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        UPDATE products SET available = NOT available, updated_at=NOW()
        WHERE id=$1
        RETURNING id, company_id, category_id, name, description, price, available, position, created_at, updated_at`
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.CompanyID,
		&product.CategoryID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Available,
		&product.Position,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id=$1`, categoryID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
