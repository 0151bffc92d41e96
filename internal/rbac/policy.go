package rbac

import "go-hrpay/internal/domain"

// Resources guarded by RBACAuthorize.
const (
	ResourceCompany         = "company"
	ResourceCompanySettings = "company_settings"
	ResourceEmployee        = "employee"
	ResourceDepartment      = "department"
	ResourceAttendance      = "attendance"
	ResourceLeave           = "leave"
	ResourceLeavePolicy     = "leave_policy"
	ResourceSalary          = "salary"
	ResourceActivity        = "activity"
	ResourceDashboard       = "dashboard"
)

const (
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionApprove  = "approve"
	ActionCancel   = "cancel"
	ActionEvaluate = "evaluate"
	ActionExport   = "export"
)

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// DefaultPolicy is the fixed permission table per role.
var DefaultPolicy = map[domain.Role][]Permission{
	domain.RolePlatformAdmin: {
		{ResourceCompany, ActionCreate},
		{ResourceCompany, ActionRead},
		{ResourceCompany, ActionUpdate},
		{ResourceCompanySettings, ActionRead},
		{ResourceCompanySettings, ActionUpdate},
		{ResourceEmployee, ActionRead},
		{ResourceAttendance, ActionEvaluate},
		{ResourceLeavePolicy, ActionCreate},
		{ResourceLeavePolicy, ActionRead},
		{ResourceLeavePolicy, ActionUpdate},
		{ResourceActivity, ActionRead},
		{ResourceDashboard, ActionRead},
	},
	domain.RoleCompanyAdmin: {
		{ResourceCompany, ActionRead},
		{ResourceCompany, ActionUpdate},
		{ResourceCompanySettings, ActionRead},
		{ResourceCompanySettings, ActionUpdate},
		{ResourceEmployee, ActionCreate},
		{ResourceEmployee, ActionRead},
		{ResourceEmployee, ActionUpdate},
		{ResourceEmployee, ActionDelete},
		{ResourceDepartment, ActionCreate},
		{ResourceDepartment, ActionRead},
		{ResourceDepartment, ActionUpdate},
		{ResourceDepartment, ActionDelete},
		{ResourceAttendance, ActionCreate},
		{ResourceAttendance, ActionRead},
		{ResourceAttendance, ActionEvaluate},
		{ResourceLeave, ActionCreate},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionApprove},
		{ResourceLeave, ActionCancel},
		{ResourceLeavePolicy, ActionCreate},
		{ResourceLeavePolicy, ActionRead},
		{ResourceLeavePolicy, ActionUpdate},
		{ResourceLeavePolicy, ActionDelete},
		{ResourceSalary, ActionCreate},
		{ResourceSalary, ActionRead},
		{ResourceSalary, ActionUpdate},
		{ResourceSalary, ActionExport},
		{ResourceActivity, ActionRead},
		{ResourceDashboard, ActionRead},
	},
	domain.RoleEmployee: {
		{ResourceCompany, ActionRead},
		{ResourceCompanySettings, ActionRead},
		{ResourceDepartment, ActionRead},
		{ResourceAttendance, ActionCreate},
		{ResourceAttendance, ActionRead},
		{ResourceLeave, ActionCreate},
		{ResourceLeave, ActionRead},
		{ResourceLeave, ActionCancel},
		{ResourceLeavePolicy, ActionRead},
		{ResourceSalary, ActionRead},
		{ResourceDashboard, ActionRead},
	},
}
