package domain

import "time"

// UserRole enumerates panel operator roles.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
)

// User models a panel operator. Admins have no company affiliation
// (CompanyID is nil); managers always belong to exactly one company.
type User struct {
	ID           string
	CompanyID    *string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Active       bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
