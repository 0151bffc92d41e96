package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_employee_number,priority:1"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_employee_user"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number,priority:2"`
	FullName       string     `gorm:"type:varchar(150);not null"`
	Email          string     `gorm:"type:varchar(255);not null"`
	Position       string     `gorm:"type:varchar(100)"`
	Role           string     `gorm:"type:varchar(20);not null;default:EMPLOYEE"`
	// BaseSalary is the current monthly salary in the smallest currency
	// unit. Salary rows copy it at creation time.
	BaseSalary int64          `gorm:"not null;default:0"`
	JoinDate   time.Time      `gorm:"type:date;not null"`
	PhotoURL   *string        `gorm:"type:text"`
	IsActive   bool           `gorm:"not null;default:true"`
	CreatedAt  time.Time      `gorm:"not null;default:now()"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// UserAccount is the slice of the users table hiring needs.
type UserAccount struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CompanyID *uuid.UUID
	IsActive  bool
}
