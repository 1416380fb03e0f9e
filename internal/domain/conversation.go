package domain

import "time"

// ConversationMode indicates whether the bot or a human agent is replying.
type ConversationMode string

const (
	ConversationModeBot    ConversationMode = "BOT"
	ConversationModeManual ConversationMode = "MANUAL"
)

// ConversationStatus enumerates conversation lifecycle states.
type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "ACTIVE"
	ConversationStatusClosed ConversationStatus = "CLOSED"
)

// Conversation tracks a customer chat thread, keyed by phone within a
// company.
type Conversation struct {
	ID            string
	CompanyID     string
	CustomerPhone string
	Mode          ConversationMode
	Status        ConversationStatus
	AgentID       *string
	ClaimedAt     *time.Time
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// AgentName and MessageCount are populated by list queries.
	AgentName    *string
	MessageCount int64
}
