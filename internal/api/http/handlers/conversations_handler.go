package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// ConversationsHandler manages chat hand-over endpoints.
type ConversationsHandler struct {
	service *service.ConversationService
}

// NewConversationsHandler constructs handler.
func NewConversationsHandler(conversationService *service.ConversationService) *ConversationsHandler {
	return &ConversationsHandler{service: conversationService}
}

// List GET /api/conversations.
func (h *ConversationsHandler) List(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	conversations, err := h.service.ListActive(c.Context(), principal, c.Query("company_id"))
	if err != nil {
		return err
	}
	items := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		items = append(items, conversationResponse(&conversations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Claim PATCH /api/conversations/:phone/claim.
func (h *ConversationsHandler) Claim(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ConversationActionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	conv, err := h.service.Claim(c.Context(), principal, req.CompanyID, c.Params("phone"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": conversationResponse(conv)})
}

// Release PATCH /api/conversations/:phone/release.
func (h *ConversationsHandler) Release(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.ConversationActionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	conv, err := h.service.Release(c.Context(), principal, req.CompanyID, c.Params("phone"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": conversationResponse(conv)})
}

// BotStatus GET /api/conversations/config/bot-status.
func (h *ConversationsHandler) BotStatus(c *fiber.Ctx) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	status, err := h.service.GetBotStatus(c.Context(), principal, c.Query("company_id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.BotStatusResponse{BotActive: status.BotActive, CompanyID: status.CompanyID})
}

func conversationResponse(conv *domain.Conversation) dto.ConversationResponse {
	return dto.ConversationResponse{
		ID:            conv.ID,
		CompanyID:     conv.CompanyID,
		CustomerPhone: conv.CustomerPhone,
		Mode:          string(conv.Mode),
		Status:        string(conv.Status),
		AgentID:       conv.AgentID,
		AgentName:     conv.AgentName,
		MessageCount:  conv.MessageCount,
		ClaimedAt:     conv.ClaimedAt,
		LastMessageAt: conv.LastMessageAt,
		CreatedAt:     conv.CreatedAt,
		UpdatedAt:     conv.UpdatedAt,
	}
}
