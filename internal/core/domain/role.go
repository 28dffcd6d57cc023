package domain

// Role is the closed set of privilege levels a user can hold.
// CompanyAdmin and User carry disjoint, company-scoped privileges;
// only SuperAdmin is unconditionally privileged.
type Role string

const (
	RoleSuperAdmin   Role = "ROLE_SUPER_ADMIN"
	RoleCompanyAdmin Role = "ROLE_COMPANY_ADMIN"
	RoleUser         Role = "ROLE_USER"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleUser:
		return true
	}
	return false
}

// ParseRole converts a wire value into a Role. Unknown values are rejected;
// role strings are validated at every boundary, never passed through.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
