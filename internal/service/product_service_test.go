package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var de *apperrors.DomainError
	if !errors.As(err, &de) || de.Code != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func testProduct(id, companyID string) *domain.Product {
	return &domain.Product{ID: id, CompanyID: companyID, Name: "Margherita", Price: 9.5, Available: true}
}

func TestProductGetUnknownIDIsNotFound(t *testing.T) {
	svc := NewProductService(newMockProductRepo())

	// Identical outcome for admin and manager: existence is checked first.
	_, err := svc.Get(context.Background(), managerPrincipal("company-7"), "missing")
	assertCode(t, err, "NOT_FOUND")

	_, err = svc.Get(context.Background(), adminPrincipal(), "missing")
	assertCode(t, err, "NOT_FOUND")
}

func TestProductGetCrossTenantIsForbidden(t *testing.T) {
	svc := NewProductService(newMockProductRepo(testProduct("p1", "company-9")))

	_, err := svc.Get(context.Background(), managerPrincipal("company-7"), "p1")
	assertCode(t, err, "FORBIDDEN")
}

func TestProductGetSameTenant(t *testing.T) {
	svc := NewProductService(newMockProductRepo(testProduct("p1", "company-7")))

	product, err := svc.Get(context.Background(), managerPrincipal("company-7"), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "p1" {
		t.Fatalf("got product %s", product.ID)
	}
}

func TestProductGetAdminCrossTenant(t *testing.T) {
	svc := NewProductService(newMockProductRepo(testProduct("p1", "company-9")))

	if _, err := svc.Get(context.Background(), adminPrincipal(), "p1"); err != nil {
		t.Fatalf("admin should reach any tenant, got %v", err)
	}
}

func TestProductListAdminNeedsExplicitCompany(t *testing.T) {
	svc := NewProductService(newMockProductRepo(testProduct("p1", "company-7")))

	_, err := svc.List(context.Background(), adminPrincipal(), "")
	assertCode(t, err, "TENANT_REQUIRED")

	products, err := svc.List(context.Background(), adminPrincipal(), "company-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
}

func TestProductListManagerIgnoresExplicitCompany(t *testing.T) {
	repo := newMockProductRepo(testProduct("p1", "company-7"), testProduct("p2", "company-9"))
	svc := NewProductService(repo)

	products, err := svc.List(context.Background(), managerPrincipal("company-7"), "company-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].CompanyID != "company-7" {
		t.Fatalf("expected only own-company products, got %+v", products)
	}
}

func TestProductCreateManagerWritesOwnCompany(t *testing.T) {
	repo := newMockProductRepo()
	svc := NewProductService(repo)

	product, err := svc.Create(context.Background(), managerPrincipal("company-7"), ProductInput{
		CompanyID: "company-9", // ignored for non-admins
		Name:      "Calzone",
		Price:     12,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.CompanyID != "company-7" {
		t.Fatalf("product landed in %s, want company-7", product.CompanyID)
	}
}

func TestProductCreateValidation(t *testing.T) {
	svc := NewProductService(newMockProductRepo())

	_, err := svc.Create(context.Background(), managerPrincipal("company-7"), ProductInput{Name: " ", Price: 10})
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Create(context.Background(), managerPrincipal("company-7"), ProductInput{Name: "Calzone"})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestProductCreateAdminNeedsCompany(t *testing.T) {
	svc := NewProductService(newMockProductRepo())

	_, err := svc.Create(context.Background(), adminPrincipal(), ProductInput{Name: "Calzone", Price: 12})
	assertCode(t, err, "TENANT_REQUIRED")

	product, err := svc.Create(context.Background(), adminPrincipal(), ProductInput{CompanyID: "company-9", Name: "Calzone", Price: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.CompanyID != "company-9" {
		t.Fatalf("product landed in %s, want company-9", product.CompanyID)
	}
}

func TestProductDeleteCrossTenantKeepsRow(t *testing.T) {
	repo := newMockProductRepo(testProduct("p1", "company-9"))
	svc := NewProductService(repo)

	err := svc.Delete(context.Background(), managerPrincipal("company-7"), "p1")
	assertCode(t, err, "FORBIDDEN")
	if len(repo.deleted) != 0 {
		t.Fatalf("delete should not have reached the repository")
	}
}

func TestProductToggle(t *testing.T) {
	repo := newMockProductRepo(testProduct("p1", "company-7"))
	svc := NewProductService(repo)

	product, err := svc.ToggleAvailability(context.Background(), managerPrincipal("company-7"), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Available {
		t.Fatal("expected availability to flip to false")
	}
}
