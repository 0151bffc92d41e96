package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType string

const (
	TypeAnnual    LeaveType = "ANNUAL"
	TypeSick      LeaveType = "SICK"
	TypeUnpaid    LeaveType = "UNPAID"
	TypeMaternity LeaveType = "MATERNITY"
)

func (t LeaveType) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeUnpaid, TypeMaternity:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType LeaveType `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          Status     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string    `gorm:"type:text"`
	CancelledBy     *uuid.UUID `gorm:"type:uuid"`
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Email    string    `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// LeavePolicy caps the approved days per leave type inside a recurring
// window. At most one policy exists per (company, leave type).
type LeavePolicy struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_policy_company_type,priority:1"`
	LeaveType   LeaveType `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_policy_company_type,priority:2"`
	AllowedDays int       `gorm:"type:int;not null"`
	Frequency   string    `gorm:"type:varchar(20);not null;default:'YEARLY'"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}
