package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusOnLeave Status = "ON_LEAVE"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPresent, StatusLate, StatusAbsent, StatusOnLeave}

const (
	SourceManual    = "MANUAL"
	SourceEvaluator = "EVALUATOR"
)

// Attendance is at most one row per (employee, calendar date), enforced by
// uq_attendance_employee_date. Rows are never soft deleted so the index
// stays authoritative.
type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID    `gorm:"column:company_id;type:uuid;not null;index:idx_attendance_company_date,priority:1"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date,priority:1"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date,priority:2;index:idx_attendance_company_date,priority:2"`
	CheckIn        *time.Time   `gorm:"column:check_in;type:timestamptz"`
	CheckOut       *time.Time   `gorm:"column:check_out;type:timestamptz"`
	Latitude       *float64     `gorm:"column:latitude"`
	Longitude      *float64     `gorm:"column:longitude"`
	Status         Status       `gorm:"column:status;type:varchar(20);not null"`
	Source         string       `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	Notes          *string      `gorm:"column:notes;type:text"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// DateOf returns the calendar date of t (in t's location) as midnight UTC,
// the form stored in attendance_date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
