package auth

import (
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// Scope is the tenant visibility computed once per request. A restricted
// scope's company id is authoritative for every store query issued during
// the request and is never widened mid-request.
type Scope struct {
	Unrestricted bool
	CompanyID    string
}

// ResolveScope computes the effective scope for a principal. Admins see
// everything unless they name a company explicitly; everyone else is pinned
// to their own company and caller-supplied ids are ignored, never honored.
func ResolveScope(p *Principal, explicitCompanyID string) Scope {
	if p.IsAdmin() {
		if explicitCompanyID == "" {
			return Scope{Unrestricted: true}
		}
		return Scope{CompanyID: explicitCompanyID}
	}
	if p.CompanyID != nil {
		return Scope{CompanyID: *p.CompanyID}
	}
	return Scope{}
}

// RequireCompany returns the scope's company id, failing when the calling
// operation needs a concrete tenant and none was selected.
func (s Scope) RequireCompany() (string, error) {
	if s.Unrestricted || s.CompanyID == "" {
		return "", apperrors.NewTenantRequired()
	}
	return s.CompanyID, nil
}
