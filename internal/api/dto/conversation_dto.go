package dto

import "time"

// ConversationActionRequest payload for claim/release calls.
type ConversationActionRequest struct {
	CompanyID string `json:"company_id"`
}

// ConversationResponse conversation shape for responses.
type ConversationResponse struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"company_id"`
	CustomerPhone string     `json:"customer_phone"`
	Mode          string     `json:"mode"`
	Status        string     `json:"status"`
	AgentID       *string    `json:"agent_id,omitempty"`
	AgentName     *string    `json:"agent_name,omitempty"`
	MessageCount  int64      `json:"message_count"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BotStatusResponse reports the bot switch for a company.
type BotStatusResponse struct {
	BotActive bool   `json:"bot_active"`
	CompanyID string `json:"company_id"`
}
