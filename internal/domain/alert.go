package domain

import "time"

// AlertType enumerates known alert kinds.
type AlertType string

const (
	AlertTypeOrderConfirmed AlertType = "ORDER_CONFIRMED"
	AlertTypeSystem         AlertType = "SYSTEM"
)

// Alert is a panel notification addressed to one user. It carries the
// owning company id so broadcasts can be scoped.
type Alert struct {
	ID        string
	CompanyID string
	UserID    string
	Type      AlertType
	Title     string
	Message   string
	Link      string
	Read      bool
	CreatedAt time.Time
}
