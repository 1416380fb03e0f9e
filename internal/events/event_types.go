package events

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated        EventType = "order_created"
	EventOrderStatusChanged  EventType = "order_status_changed"
	EventConversationClaimed EventType = "conversation_claimed"
)

// Event represents a domain event emitted by services. CompanyID carries
// the owning tenant so subscribers can scope their side effects.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CompanyID string      `json:"company_id"`
	ActorID   *string     `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	OrderID       string  `json:"order_id"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerPhone string  `json:"customer_phone"`
	Total         float64 `json:"total"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OrderID   string             `json:"order_id"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
	Note      string             `json:"note,omitempty"`
}

// ConversationClaimedPayload payload.
type ConversationClaimedPayload struct {
	CustomerPhone string `json:"customer_phone"`
	AgentID       string `json:"agent_id"`
}
