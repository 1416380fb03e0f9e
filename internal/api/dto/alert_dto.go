package dto

import "time"

// BroadcastAlertRequest payload for webhook/internal alert fan-out.
type BroadcastAlertRequest struct {
	CompanyID string `json:"company_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link"`
}

// AlertResponse alert shape for responses.
type AlertResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
