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

// CategoryService coordinates menu category workflows.
type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// CategoryInput describes creation/update payloads.
type CategoryInput struct {
	CompanyID   string
	Name        string
	Description string
	Position    int
	Active      *bool
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

// List returns the categories visible under the request scope.
func (s *CategoryService) List(ctx context.Context, principal *auth.Principal, explicitCompanyID string) ([]domain.Category, error) {
	scope := auth.ResolveScope(principal, explicitCompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	return s.categories.ListByCompany(ctx, companyID)
}

// Create adds a category to the scope's company.
func (s *CategoryService) Create(ctx context.Context, principal *auth.Principal, input CategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}

	scope := auth.ResolveScope(principal, input.CompanyID)
	companyID, err := scope.RequireCompany()
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeCreate(principal, companyID); err != nil {
		return nil, err
	}

	category := &domain.Category{
		CompanyID:   companyID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Position:    input.Position,
		Active:      true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update rewrites a category after re-validating ownership.
func (s *CategoryService) Update(ctx context.Context, principal *auth.Principal, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeMutate(principal, category.CompanyID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Description = input.Description
	category.Position = input.Position
	if input.Active != nil {
		category.Active = *input.Active
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category unless products still reference it.
func (s *CategoryService) Delete(ctx context.Context, principal *auth.Principal, id string) error {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeMutate(principal, category.CompanyID); err != nil {
		return err
	}

	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewValidationError("category still has products attached", map[string]any{"products": count})
	}
	return s.categories.Delete(ctx, id)
}

func (s *CategoryService) loadCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", nil)
		}
		return nil, err
	}
	return category, nil
}
