package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the login identity. CompanyID and EmployeeID stay nil until a
// company admin hires the user.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password    string     `gorm:"type:varchar(255);not null"`
	Address     string     `gorm:"type:text"`
	DateOfBirth time.Time  `gorm:"type:date"`
	Gender      string     `gorm:"type:varchar(10)"`
	Phone       string     `gorm:"type:varchar(30)"`
	Role        string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	IsActive    bool       `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
