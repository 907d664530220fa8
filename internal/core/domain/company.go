package domain

import (
	"slices"
	"time"
)

// Company is the tenant boundary: accounts and journal entries belong to exactly one company.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// CompanyRole defines the roles a user can have within a company.
type CompanyRole string

const (
	RoleAdmin    CompanyRole = "ADMIN"
	RoleMember   CompanyRole = "MEMBER"
	RoleReadOnly CompanyRole = "READONLY"
)

// IsValid reports whether r is a known role.
func (r CompanyRole) IsValid() bool {
	return r == RoleAdmin || r == RoleMember || r == RoleReadOnly
}

func (r CompanyRole) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleReadOnly:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether r meets or exceeds required.
func (r CompanyRole) Satisfies(required CompanyRole) bool {
	return r.rank() > 0 && r.rank() >= required.rank()
}

// CompanyUser is the membership of a user in a company.
type CompanyUser struct {
	CompanyID string      `json:"companyID"`
	UserID    string      `json:"userID"`
	Role      CompanyRole `json:"role"`
	JoinedAt  time.Time   `json:"joinedAt"`
}

// LeavesNoAdmin reports whether giving userID the role next would leave the company,
// whose current ADMINs are admins, without any ADMIN.
func LeavesNoAdmin(admins []string, userID string, next CompanyRole) bool {
	if next == RoleAdmin || !slices.Contains(admins, userID) {
		return false
	}
	for _, a := range admins {
		if a != userID {
			return false
		}
	}
	return true
}
