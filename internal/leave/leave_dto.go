package leave

type CreateLeaveRequest struct {
	// EmployeeID lets an admin file leave for someone else. Employees always
	// file for themselves.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID MATERNITY"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason" binding:"max=1000"`
}

type UpdateStatusRequest struct {
	Status          string  `json:"status" binding:"required"`
	RejectionReason *string `json:"rejection_reason"`
}

type ListFilter struct {
	EmployeeID string
	Status     string
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CancelledBy     *string `json:"cancelled_by,omitempty"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
}

type CreatePolicyRequest struct {
	// CompanyID is only honored for platform admins.
	CompanyID   string `json:"company_id" binding:"omitempty,uuid"`
	LeaveType   string `json:"leave_type" binding:"required,oneof=ANNUAL SICK UNPAID MATERNITY"`
	AllowedDays int    `json:"allowed_days" binding:"required,min=1,max=366"`
	Frequency   string `json:"frequency" binding:"required,oneof=WEEKLY MONTHLY YEARLY"`
}

type UpdatePolicyRequest struct {
	AllowedDays *int    `json:"allowed_days" binding:"omitempty,min=1,max=366"`
	Frequency   *string `json:"frequency" binding:"omitempty,oneof=WEEKLY MONTHLY YEARLY"`
	IsActive    *bool   `json:"is_active"`
}

type PolicyResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	LeaveType   string `json:"leave_type"`
	AllowedDays int    `json:"allowed_days"`
	Frequency   string `json:"frequency"`
	IsActive    bool   `json:"is_active"`
}
