package domain

import "time"

// Company is a tenant. Every tenant-owned resource carries its id,
// assigned at creation and never reassigned.
type Company struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
