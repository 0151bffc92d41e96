package salary

type CreateSalaryRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required"`
	Month           string `json:"month" binding:"required"`
	Year            string `json:"year" binding:"required"`
	Bonus           int64  `json:"bonus"`
	Deduction       int64  `json:"deduction"`
	AttendanceBonus int64  `json:"attendance_bonus"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilter struct {
	EmployeeID string
	Month      string
	Year       string
	Status     string
}

type SalaryResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Month           string  `json:"month"`
	Year            string  `json:"year"`
	BaseSalary      int64   `json:"base_salary"`
	Bonus           int64   `json:"bonus"`
	AttendanceBonus int64   `json:"attendance_bonus"`
	Deduction       int64   `json:"deduction"`
	Total           int64   `json:"total"`
	Status          string  `json:"status"`
	PaidAt          *string `json:"paid_at,omitempty"`
	PayslipURL      *string `json:"payslip_url,omitempty"`
	CreatedBy       string  `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
}

// PreviewResponse suggests the attendance driven parts of a salary before it
// is created. Nothing is persisted.
type PreviewResponse struct {
	EmployeeID      string `json:"employee_id"`
	Month           string `json:"month"`
	Year            string `json:"year"`
	BaseSalary      int64  `json:"base_salary"`
	PresentDays     int64  `json:"present_days"`
	LateDays        int64  `json:"late_days"`
	AbsentDays      int64  `json:"absent_days"`
	OnLeaveDays     int64  `json:"on_leave_days"`
	AttendanceBonus int64  `json:"attendance_bonus"`
	Deduction       int64  `json:"deduction"`
	Total           int64  `json:"total"`
}

type PayslipResponse struct {
	SalaryID   string `json:"salary_id"`
	PayslipURL string `json:"payslip_url"`
}
