package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// OrdersHandler manages order endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// List GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	orders, err := h.service.List(c.Context(), principal, c.Query("company_id"), parseOrderQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, orderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	order, history, err := h.service.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	entries := make([]dto.OrderHistoryResponse, 0, len(history))
	for i := range history {
		entries = append(entries, historyResponse(&history[i]))
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"order":   orderResponse(order),
			"history": entries,
		},
	})
}

// Create POST /api/orders. Called by the bot webhook once a customer
// confirms an order.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.Create(c.Context(), principal, service.OrderCreateInput{
		CompanyID:        req.CompanyID,
		CustomerPhone:    req.CustomerPhone,
		CustomerName:     req.CustomerName,
		CustomerAddress:  req.CustomerAddress,
		CustomerDistrict: req.CustomerDistrict,
		Items:            req.Items,
		Subtotal:         req.Subtotal,
		DeliveryFee:      req.DeliveryFee,
		Discount:         req.Discount,
		Total:            req.Total,
		PaymentMethod:    req.PaymentMethod,
		ChangeFor:        req.ChangeFor,
		Notes:            req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": orderResponse(order)})
}

// UpdateStatus PATCH /api/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	order, err := h.service.UpdateStatus(c.Context(), principal, c.Params("id"), domain.OrderStatus(req.Status), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

// MarkPrinted PATCH /api/orders/:id/printed.
func (h *OrdersHandler) MarkPrinted(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkPrinted(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "order marked printed"}})
}

func parseOrderQuery(c *fiber.Ctx) service.OrderListFilter {
	filter := service.OrderListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.OrderStatus(statusStr)
		filter.Status = &status
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	filter.Limit = parseInt(c.Query("limit"), 50)
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func orderResponse(order *domain.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:               order.ID,
		CompanyID:        order.CompanyID,
		CustomerPhone:    order.CustomerPhone,
		CustomerName:     order.CustomerName,
		CustomerAddress:  order.CustomerAddress,
		CustomerDistrict: order.CustomerDistrict,
		Items:            order.Items,
		Subtotal:         order.Subtotal,
		DeliveryFee:      order.DeliveryFee,
		Discount:         order.Discount,
		Total:            order.Total,
		PaymentMethod:    order.PaymentMethod,
		ChangeFor:        order.ChangeFor,
		Notes:            order.Notes,
		Status:           string(order.Status),
		Printed:          order.Printed,
		PrintedAt:        order.PrintedAt,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

func historyResponse(entry *domain.OrderHistory) dto.OrderHistoryResponse {
	resp := dto.OrderHistoryResponse{
		ID:        entry.ID,
		NewStatus: string(entry.NewStatus),
		Note:      entry.Note,
		UserID:    entry.UserID,
		CreatedAt: entry.CreatedAt,
	}
	if entry.OldStatus != nil {
		old := string(*entry.OldStatus)
		resp.OldStatus = &old
	}
	return resp
}
