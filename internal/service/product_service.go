package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// ProductService coordinates menu product workflows. Every operation
// resolves the tenant scope and applies the shared access guard; no role
// checks live here inline.
type ProductService struct {
	products repository.ProductRepository
}

// ProductInput describes creation/update payloads. CompanyID is honored
// for admins only; everyone else writes into their own company.
type ProductInput struct {
	CompanyID   string
	CategoryID  *string
	Name        string
	Description string
	Price       float64
	Available   *bool
	Position    int
}

// NewProductService constructs the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns the products visible under the request scope.
func (s *ProductService) List(ctx context.Context, principal *auth.Principal, explicitCompanyID string) ([]domain.Product, error) {
	scope := auth.ResolveScope(principal, explicitCompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	return s.products.ListByCompany(ctx, companyID)
}

// Get loads one product. Existence is checked tenant-agnostically before
// ownership, so an unknown id is NOT_FOUND even across tenants.
func (s *ProductService) Get(ctx context.Context, principal *auth.Principal, id string) (*domain.Product, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeRead(principal, product.CompanyID); err != nil {
		return nil, err
	}
	return product, nil
}

// Create adds a product to the scope's company.
func (s *ProductService) Create(ctx context.Context, principal *auth.Principal, input ProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" || input.Price <= 0 {
		return nil, apperrors.NewValidationError("name and price are required", nil)
	}

	scope := auth.ResolveScope(principal, input.CompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeCreate(principal, companyID); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	product := &domain.Product{
		CompanyID:   companyID,
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Available:   available,
		Position:    input.Position,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update rewrites a product's editable fields after re-validating ownership.
func (s *ProductService) Update(ctx context.Context, principal *auth.Principal, id string, input ProductInput) (*domain.Product, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeMutate(principal, product.CompanyID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" || input.Price <= 0 {
		return nil, apperrors.NewValidationError("name and price are required", nil)
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	if input.Available != nil {
		product.Available = *input.Available
	}
	product.Position = input.Position

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ToggleAvailability flips the available flag.
func (s *ProductService) ToggleAvailability(ctx context.Context, principal *auth.Principal, id string) (*domain.Product, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeMutate(principal, product.CompanyID); err != nil {
		return nil, err
	}
	return s.products.ToggleAvailability(ctx, id)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, principal *auth.Principal, id string) error {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeMutate(principal, product.CompanyID); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func (s *ProductService) loadProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}
	return product, nil
}
