package domain

// Principal is the authenticated identity acting in a request. It is built
// from the freshly loaded user record — not the token's embedded claims — so
// role and company changes take effect before the token's natural expiry.
// Immutable for the lifetime of a request.
type Principal struct {
	ID        int64
	Username  string
	Role      Role
	CompanyID *int64
}

func (p Principal) IsSuperAdmin() bool { return p.Role == RoleSuperAdmin }

func (p Principal) IsCompanyAdmin() bool { return p.Role == RoleCompanyAdmin }

func (p Principal) IsJustUser() bool { return p.Role == RoleUser }

// MemberOf reports whether the principal belongs to the given company.
func (p Principal) MemberOf(companyID int64) bool {
	return p.CompanyID != nil && *p.CompanyID == companyID
}
