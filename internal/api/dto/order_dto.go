package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// CreateOrderRequest payload from the bot webhook.
type CreateOrderRequest struct {
	CompanyID        string             `json:"company_id"`
	CustomerPhone    string             `json:"customer_phone"`
	CustomerName     string             `json:"customer_name"`
	CustomerAddress  string             `json:"customer_address"`
	CustomerDistrict string             `json:"customer_district"`
	Items            []domain.OrderItem `json:"items"`
	Subtotal         float64            `json:"subtotal"`
	DeliveryFee      float64            `json:"delivery_fee"`
	Discount         float64            `json:"discount"`
	Total            float64            `json:"total"`
	PaymentMethod    string             `json:"payment_method"`
	ChangeFor        *float64           `json:"change_for"`
	Notes            string             `json:"notes"`
}

// UpdateOrderStatusRequest payload for status transitions.
type UpdateOrderStatusRequest struct {
	CompanyID string `json:"company_id"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

// MarkPrintedRequest payload for the printed flag.
type MarkPrintedRequest struct {
	CompanyID string `json:"company_id"`
}

// OrderResponse order shape for responses.
type OrderResponse struct {
	ID               string             `json:"id"`
	CompanyID        string             `json:"company_id"`
	CustomerPhone    string             `json:"customer_phone"`
	CustomerName     string             `json:"customer_name"`
	CustomerAddress  string             `json:"customer_address"`
	CustomerDistrict string             `json:"customer_district"`
	Items            []domain.OrderItem `json:"items"`
	Subtotal         float64            `json:"subtotal"`
	DeliveryFee      float64            `json:"delivery_fee"`
	Discount         float64            `json:"discount"`
	Total            float64            `json:"total"`
	PaymentMethod    string             `json:"payment_method"`
	ChangeFor        *float64           `json:"change_for,omitempty"`
	Notes            string             `json:"notes"`
	Status           string             `json:"status"`
	Printed          bool               `json:"printed"`
	PrintedAt        *time.Time         `json:"printed_at,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// OrderHistoryResponse one status transition.
type OrderHistoryResponse struct {
	ID        string    `json:"id"`
	OldStatus *string   `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	Note      string    `json:"note,omitempty"`
	UserID    *string   `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
