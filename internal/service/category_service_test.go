package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

type mockCategoryRepo struct {
	byID    map[string]*domain.Category
	nextID  int
	deleted []string
}

func newMockCategoryRepo(categories ...*domain.Category) *mockCategoryRepo {
	repo := &mockCategoryRepo{byID: make(map[string]*domain.Category)}
	for _, c := range categories {
		repo.byID[c.ID] = c
	}
	return repo
}

func (m *mockCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	m.nextID++
	category.ID = fmt.Sprintf("category-%d", m.nextID)
	m.byID[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := m.byID[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.byID[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *category
	return &clone, nil
}

func (m *mockCategoryRepo) ListByCompany(_ context.Context, companyID string) ([]domain.Category, error) {
	var result []domain.Category
	for _, c := range m.byID {
		if c.CompanyID == companyID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

var _ repository.CategoryRepository = (*mockCategoryRepo)(nil)

func TestCategoryDeleteRefusedWhileProductsAttached(t *testing.T) {
	categoryID := "category-1"
	categories := newMockCategoryRepo(&domain.Category{ID: categoryID, CompanyID: "company-7", Name: "Pizzas"})
	products := newMockProductRepo(&domain.Product{ID: "p1", CompanyID: "company-7", CategoryID: &categoryID, Name: "Margherita", Price: 9.5})
	svc := NewCategoryService(categories, products)

	err := svc.Delete(context.Background(), managerPrincipal("company-7"), categoryID)
	assertCode(t, err, "VALIDATION_FAILED")
	if len(categories.deleted) != 0 {
		t.Fatal("category must survive while referenced")
	}
}

func TestCategoryDeleteEmpty(t *testing.T) {
	categories := newMockCategoryRepo(&domain.Category{ID: "category-1", CompanyID: "company-7", Name: "Pizzas"})
	svc := NewCategoryService(categories, newMockProductRepo())

	if err := svc.Delete(context.Background(), managerPrincipal("company-7"), "category-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories.deleted) != 1 {
		t.Fatal("expected delete to reach the repository")
	}
}

func TestCategoryDeleteCrossTenant(t *testing.T) {
	categories := newMockCategoryRepo(&domain.Category{ID: "category-1", CompanyID: "company-9", Name: "Pizzas"})
	svc := NewCategoryService(categories, newMockProductRepo())

	err := svc.Delete(context.Background(), managerPrincipal("company-7"), "category-1")
	assertCode(t, err, "FORBIDDEN")
}

func TestCategoryCreateManagerPinnedToOwnCompany(t *testing.T) {
	categories := newMockCategoryRepo()
	svc := NewCategoryService(categories, newMockProductRepo())

	category, err := svc.Create(context.Background(), managerPrincipal("company-7"), CategoryInput{CompanyID: "company-9", Name: "Drinks"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.CompanyID != "company-7" {
		t.Fatalf("category landed in %s, want company-7", category.CompanyID)
	}
}

func TestCategoryUpdateUnknownIsNotFound(t *testing.T) {
	svc := NewCategoryService(newMockCategoryRepo(), newMockProductRepo())

	_, err := svc.Update(context.Background(), adminPrincipal(), "missing", CategoryInput{Name: "Drinks"})
	assertCode(t, err, "NOT_FOUND")
}
