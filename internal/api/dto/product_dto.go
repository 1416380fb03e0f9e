package dto

import "time"

// ProductRequest payload for product create/update. CompanyID is only
// honored when the caller is an admin.
type ProductRequest struct {
	CompanyID   string  `json:"company_id"`
	CategoryID  *string `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
	Position    int     `json:"position"`
}

// ProductResponse product shape for responses.
type ProductResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	CategoryID   *string   `json:"category_id"`
	CategoryName *string   `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Available    bool      `json:"available"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
