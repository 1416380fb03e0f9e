package auth

import (
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// CanAccess is the single authorization predicate: a resource is visible
// and mutable to a principal iff the principal is admin or the resource
// belongs to the principal's company. Evaluated fresh on every call.
func CanAccess(p *Principal, resourceCompanyID string) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	return p.CompanyID != nil && *p.CompanyID == resourceCompanyID
}

// AuthorizeRead allows or denies reading a loaded resource.
func AuthorizeRead(p *Principal, resourceCompanyID string) error {
	if !CanAccess(p, resourceCompanyID) {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

// AuthorizeMutate allows or denies mutating a loaded resource. Identical
// to read in this system; kept separate so call sites state intent.
func AuthorizeMutate(p *Principal, resourceCompanyID string) error {
	return AuthorizeRead(p, resourceCompanyID)
}

// AuthorizeCreate allows or denies writing a new resource into the target
// company.
func AuthorizeCreate(p *Principal, targetCompanyID string) error {
	return AuthorizeRead(p, targetCompanyID)
}
