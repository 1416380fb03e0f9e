package domain

import "time"

// Product is a menu item belonging to one company.
type Product struct {
	ID          string
	CompanyID   string
	CategoryID  *string
	Name        string
	Description string
	Price       float64
	Available   bool
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// CategoryName is populated by list queries joining categories.
	CategoryName *string
}
