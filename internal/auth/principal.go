package auth

import "github.com/spec-kit/restaurant-service/internal/domain"

// Principal is the authenticated caller for one request. It is built from
// a verified token by the middleware, lives only for the request, and is
// never mutated downstream.
type Principal struct {
	ID        string
	Name      string
	Email     string
	Role      domain.UserRole
	CompanyID *string
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == domain.RoleAdmin
}

// PrincipalForUser derives a principal from a stored user record.
func PrincipalForUser(user *domain.User) *Principal {
	return &Principal{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}
}
