package employee

import "time"

// CreateEmployeeRequest hires an already registered user into the caller's
// company.
type CreateEmployeeRequest struct {
	UserID       string `json:"user_id" binding:"required,uuid"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	Position     string `json:"position" binding:"max=100"`
	Role         string `json:"role" binding:"omitempty,oneof=COMPANY_ADMIN EMPLOYEE"`
	BaseSalary   int64  `json:"base_salary" binding:"min=0,max=1000000000000000"`
	JoinDate     string `json:"join_date" binding:"required,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
	Position     *string `json:"position" binding:"omitempty,max=100"`
	Role         *string `json:"role" binding:"omitempty,oneof=COMPANY_ADMIN EMPLOYEE"`
	BaseSalary   *int64  `json:"base_salary" binding:"omitempty,min=0,max=1000000000000000"`
	JoinDate     *string `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CompanyID      string    `json:"company_id"`
	DepartmentID   string    `json:"department_id,omitempty"`
	EmployeeNumber string    `json:"employee_number"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Position       string    `json:"position,omitempty"`
	Role           string    `json:"role"`
	BaseSalary     int64     `json:"base_salary"`
	JoinDate       string    `json:"join_date"`
	PhotoURL       string    `json:"photo_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
