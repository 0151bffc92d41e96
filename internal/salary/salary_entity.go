package salary

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Salary is one employee's pay for a calendar month. Money is stored in the
// smallest currency unit.
type Salary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_salary_company_period"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_employee_period,priority:1"`

	Month string `gorm:"type:char(2);not null;uniqueIndex:uq_salary_employee_period,priority:2;index:idx_salary_company_period"`
	Year  string `gorm:"type:char(4);not null;uniqueIndex:uq_salary_employee_period,priority:3;index:idx_salary_company_period"`

	// BaseSalary is a snapshot of the employee's base salary when the row was
	// created. Later raises never touch it.
	BaseSalary      int64 `gorm:"type:bigint;not null;default:0"`
	Bonus           int64 `gorm:"type:bigint;not null;default:0"`
	AttendanceBonus int64 `gorm:"type:bigint;not null;default:0"`
	Deduction       int64 `gorm:"type:bigint;not null;default:0"`
	Total           int64 `gorm:"type:bigint;not null;default:0"`

	Status     Status     `gorm:"type:varchar(10);not null;default:UNPAID"`
	PaidAt     *time.Time `gorm:"index"`
	PayslipURL *string    `gorm:"type:text"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Salary) TableName() string {
	return "salaries"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid"`
	EmployeeNumber string    `gorm:"column:employee_number"`
	FullName       string    `gorm:"column:full_name"`
	Email          string    `gorm:"column:email"`
	Position       string    `gorm:"column:position"`
	BaseSalary     int64     `gorm:"column:base_salary"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
