package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AlertsHandler manages panel notification endpoints.
type AlertsHandler struct {
	service *service.AlertService
}

// NewAlertsHandler constructs handler.
func NewAlertsHandler(alertService *service.AlertService) *AlertsHandler {
	return &AlertsHandler{service: alertService}
}

// List GET /api/alerts.
func (h *AlertsHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	alerts, err := h.service.ListForUser(c.Context(), principal, parseInt(c.Query("limit"), 50))
	if err != nil {
		return err
	}
	items := make([]dto.AlertResponse, 0, len(alerts))
	for i := range alerts {
		items = append(items, alertResponse(&alerts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UnreadCount GET /api/alerts/unread-count.
func (h *AlertsHandler) UnreadCount(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	count, err := h.service.CountUnread(c.Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"total": count}})
}

// MarkRead PATCH /api/alerts/:id/read.
func (h *AlertsHandler) MarkRead(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "alert marked read"}})
}

// Broadcast POST /api/alerts. Used by internal automations to notify a
// company's panel users.
func (h *AlertsHandler) Broadcast(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.BroadcastAlertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	total, err := h.service.Broadcast(c.Context(), principal, service.BroadcastInput{
		CompanyID: req.CompanyID,
		Type:      domain.AlertType(req.Type),
		Title:     req.Title,
		Message:   req.Message,
		Link:      req.Link,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"total": total}})
}

func alertResponse(alert *domain.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:        alert.ID,
		CompanyID: alert.CompanyID,
		Type:      string(alert.Type),
		Title:     alert.Title,
		Message:   alert.Message,
		Link:      alert.Link,
		Read:      alert.Read,
		CreatedAt: alert.CreatedAt,
	}
}
