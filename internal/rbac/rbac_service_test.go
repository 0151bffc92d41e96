package rbac

import (
	"testing"

	"go-hrpay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	e, err := NewEnforcer(DefaultPolicy)
	require.NoError(t, err)
	return NewService(e)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name    string
		role    domain.Role
		res     string
		act     string
		allowed bool
	}{
		{"admin creates salary", domain.RoleCompanyAdmin, ResourceSalary, ActionCreate, true},
		{"employee cannot create salary", domain.RoleEmployee, ResourceSalary, ActionCreate, false},
		{"employee reads own salaries", domain.RoleEmployee, ResourceSalary, ActionRead, true},
		{"employee cannot approve leave", domain.RoleEmployee, ResourceLeave, ActionApprove, false},
		{"employee cancels leave", domain.RoleEmployee, ResourceLeave, ActionCancel, true},
		{"platform admin creates company", domain.RolePlatformAdmin, ResourceCompany, ActionCreate, true},
		{"company admin cannot create company", domain.RoleCompanyAdmin, ResourceCompany, ActionCreate, false},
		{"unknown resource", domain.RoleCompanyAdmin, "payroll", ActionRead, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tc.role, Resource: tc.res, Action: tc.act})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_Permissions(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.Permissions(domain.RoleEmployee)
	assert.NoError(t, err)
	assert.Len(t, perms, len(DefaultPolicy[domain.RoleEmployee]))
	assert.Contains(t, perms, Permission{Resource: ResourceLeave, Action: ActionCreate})
}

func TestDefaultPolicy_CoversEveryRole(t *testing.T) {
	for _, role := range domain.Roles {
		assert.NotEmpty(t, DefaultPolicy[role], role.String())
	}
}
