package domain

import "time"

// Category groups products on a company's menu.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Position    int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
