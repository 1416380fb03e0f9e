package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
)

// NotificationService reacts to domain events: it raises panel alerts and
// emits webhook notifications for external automations.
type NotificationService struct {
	dispatcher events.Dispatcher
	alerts     *AlertService
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, alerts *AlertService, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		alerts:     alerts,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
	n.dispatcher.Subscribe(events.EventConversationClaimed, n.handleConversationClaimed)
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderCreated", zap.String("company_id", event.CompanyID), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.OrderCreatedPayload)
	if ok && n.alerts != nil {
		customer := payload.CustomerName
		if customer == "" {
			customer = payload.CustomerPhone
		}
		_, err := n.alerts.BroadcastSystem(ctx, BroadcastInput{
			CompanyID: event.CompanyID,
			Type:      domain.AlertTypeOrderConfirmed,
			Title:     "New order confirmed!",
			Message:   fmt.Sprintf("Customer %s confirmed an order of %.2f", customer, payload.Total),
			Link:      "orders.html?id=" + payload.OrderID,
		})
		if err != nil {
			n.logger.Warn("alert broadcast failed", zap.Error(err))
		}
	}

	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.String("company_id", event.CompanyID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleConversationClaimed(ctx context.Context, event events.Event) error {
	n.logger.Info("ConversationClaimed", zap.String("company_id", event.CompanyID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("company_id", event.CompanyID),
		zap.String("event_type", string(event.Type)))
}
