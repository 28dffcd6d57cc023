// Package policy contains the access decision engine: a pure function from
// (principal, action, target) to Allow or Deny. It performs no I/O and holds
// no state; anything not explicitly allowed is denied.
package policy

import "github.com/staffdir/directory-api/internal/core/domain"

// Action enumerates every operation subject to an access decision.
type Action string

const (
	ActionListCompanies    Action = "list_companies"
	ActionViewCompany      Action = "view_company"
	ActionCreateCompany    Action = "create_company"
	ActionUpdateCompany    Action = "update_company"
	ActionDeleteCompany    Action = "delete_company"
	ActionListCompanyUsers Action = "list_company_users"
	ActionListUsers        Action = "list_users"
	ActionViewUser         Action = "view_user"
	ActionCreateUser       Action = "create_user"
	ActionUpdateUser       Action = "update_user"
	ActionDeleteUser       Action = "delete_user"
	ActionSetUserCompany   Action = "set_user_company"
	ActionUnsetUserCompany Action = "unset_user_company"
	ActionViewSelf         Action = "view_self"
)

// Decision is the outcome of an access check.
type Decision string

const (
	Allow Decision = "allow"
	Deny  Decision = "deny"
)

// Target carries the ownership context the decision needs. Fields are nil
// when unknown or not applicable; a scoped rule whose fact is missing denies.
type Target struct {
	// UserID identifies the user a user-scoped action operates on.
	UserID *int64
	// UserCompanyID is the company of the target user, taken from the
	// loaded record.
	UserCompanyID *int64
	// CompanyID identifies the company a company-scoped action operates on.
	CompanyID *int64
}

// Decide returns the access decision for principal performing action on
// target. Malformed input never panics; it simply denies.
func Decide(p domain.Principal, action Action, t Target) Decision {
	if !known(action) {
		return Deny
	}
	switch p.Role {
	case domain.RoleSuperAdmin:
		return Allow
	case domain.RoleCompanyAdmin:
		return decideCompanyAdmin(p, action, t)
	case domain.RoleUser:
		return decideUser(p, action, t)
	}
	return Deny
}

// NeedsTarget reports whether the decision for role × action depends on facts
// only obtainable by loading the target resource (its company). Callers use
// it to order checks: when false, authorization is decided on static facts
// before any existence check, so Forbidden wins over NotFound; when true, the
// target must be loaded first and a missing target yields NotFound even to a
// principal who would otherwise be denied.
func NeedsTarget(role domain.Role, action Action) bool {
	if role != domain.RoleCompanyAdmin {
		return false
	}
	return action == ActionViewUser || action == ActionUpdateUser
}

func decideCompanyAdmin(p domain.Principal, action Action, t Target) Decision {
	switch action {
	case ActionListCompanies, ActionViewCompany, ActionListUsers, ActionCreateUser, ActionViewSelf:
		return Allow
	case ActionListCompanyUsers:
		return sameCompany(p, t.CompanyID)
	case ActionViewUser, ActionUpdateUser:
		return sameCompany(p, t.UserCompanyID)
	}
	return Deny
}

func decideUser(p domain.Principal, action Action, t Target) Decision {
	switch action {
	case ActionListCompanies, ActionViewCompany, ActionViewSelf:
		return Allow
	case ActionViewUser:
		if t.UserID != nil && *t.UserID == p.ID {
			return Allow
		}
	}
	return Deny
}

func sameCompany(p domain.Principal, companyID *int64) Decision {
	if companyID != nil && p.MemberOf(*companyID) {
		return Allow
	}
	return Deny
}

func known(action Action) bool {
	switch action {
	case ActionListCompanies, ActionViewCompany, ActionCreateCompany,
		ActionUpdateCompany, ActionDeleteCompany, ActionListCompanyUsers,
		ActionListUsers, ActionViewUser, ActionCreateUser, ActionUpdateUser,
		ActionDeleteUser, ActionSetUserCompany, ActionUnsetUserCompany,
		ActionViewSelf:
		return true
	}
	return false
}
