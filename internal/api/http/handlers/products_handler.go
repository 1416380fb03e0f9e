package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// ProductsHandler manages menu product endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// List GET /api/products. Admins select a tenant with ?company_id=.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	products, err := h.service.List(c.Context(), principal, c.Query("company_id"))
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	product, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Create POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	product, err := h.service.Create(c.Context(), principal, productInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productResponse(product)})
}

// Update PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	product, err := h.service.Update(c.Context(), principal, c.Params("id"), productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Toggle PATCH /api/products/:id/toggle.
func (h *ProductsHandler) Toggle(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	product, err := h.service.ToggleAvailability(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Delete DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "product deleted"}})
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		CompanyID:   req.CompanyID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   req.Available,
		Position:    req.Position,
	}
}

func productResponse(product *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           product.ID,
		CompanyID:    product.CompanyID,
		CategoryID:   product.CategoryID,
		CategoryName: product.CategoryName,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		Available:    product.Available,
		Position:     product.Position,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}
