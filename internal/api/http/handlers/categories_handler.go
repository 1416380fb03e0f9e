package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// CategoriesHandler manages menu category endpoints.
type CategoriesHandler struct {
	service *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{service: categoryService}
}

// List GET /api/categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	categories, err := h.service.List(c.Context(), principal, c.Query("company_id"))
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, categoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /api/categories.
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Create(c.Context(), principal, categoryInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": categoryResponse(category)})
}

// Update PUT /api/categories/:id.
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.service.Update(c.Context(), principal, c.Params("id"), categoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(category)})
}

// Delete DELETE /api/categories/:id.
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "category deleted"}})
}

func categoryInput(req dto.CategoryRequest) service.CategoryInput {
	return service.CategoryInput{
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
		Active:      req.Active,
	}
}

func categoryResponse(category *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          category.ID,
		CompanyID:   category.CompanyID,
		Name:        category.Name,
		Description: category.Description,
		Position:    category.Position,
		Active:      category.Active,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
