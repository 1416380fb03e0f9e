package domain

import "time"

// OrderStatus enumerates lifecycle states for orders.
type OrderStatus string

const (
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// OrderItem is one line of an order, stored as JSONB alongside the order.
type OrderItem struct {
	ProductID string  `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Notes     string  `json:"notes,omitempty"`
}

// Order is a customer order received through the bot webhook and managed
// from the panel.
type Order struct {
	ID               string
	CompanyID        string
	CustomerPhone    string
	CustomerName     string
	CustomerAddress  string
	CustomerDistrict string
	Items            []OrderItem
	Subtotal         float64
	DeliveryFee      float64
	Discount         float64
	Total            float64
	PaymentMethod    string
	ChangeFor        *float64
	Notes            string
	Status           OrderStatus
	Printed          bool
	PrintedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderHistory is an immutable record of one status transition.
type OrderHistory struct {
	ID        string
	OrderID   string
	OldStatus *OrderStatus
	NewStatus OrderStatus
	Note      string
	UserID    *string
	CreatedAt time.Time
}
