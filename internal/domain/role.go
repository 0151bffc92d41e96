package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of access roles. Values outside the three
// constants below cannot be produced by ParseRole.
type Role string

const (
	RolePlatformAdmin Role = "PLATFORM_ADMIN"
	RoleCompanyAdmin  Role = "COMPANY_ADMIN"
	RoleEmployee      Role = "EMPLOYEE"
)

const DashboardPrefix = "/dashboard"

// Roles lists every role, in descending privilege.
var Roles = []Role{RolePlatformAdmin, RoleCompanyAdmin, RoleEmployee}

func ParseRole(v string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(v))); r {
	case RolePlatformAdmin, RoleCompanyAdmin, RoleEmployee:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", v)
	}
}

// HomePrefix is the dashboard subtree the role is allowed to open.
func (r Role) HomePrefix() string {
	switch r {
	case RolePlatformAdmin:
		return DashboardPrefix + "/super-admin"
	case RoleCompanyAdmin:
		return DashboardPrefix + "/admin"
	case RoleEmployee:
		return DashboardPrefix + "/user"
	}
	panic(fmt.Sprintf("domain: unhandled role %q", string(r)))
}

// IsTenantScoped reports whether the role only ever sees its own company.
func (r Role) IsTenantScoped() bool {
	switch r {
	case RolePlatformAdmin:
		return false
	case RoleCompanyAdmin, RoleEmployee:
		return true
	}
	panic(fmt.Sprintf("domain: unhandled role %q", string(r)))
}

func (r Role) String() string {
	return string(r)
}
