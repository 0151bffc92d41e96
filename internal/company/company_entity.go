package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the tenant root. The settings columns parameterize attendance
// and payroll for every employee of the company.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_companies_email"`
	Address   string    `gorm:"type:text"`
	LogoURL   *string   `gorm:"type:text"`
	IsActive  bool      `gorm:"not null;default:true"`

	LateAttendancePenaltyRate float64 `gorm:"type:numeric(5,2);not null;default:0"`
	AttendanceBonusRate       float64 `gorm:"type:numeric(5,2);not null;default:0"`
	CheckInStartTime          string  `gorm:"type:varchar(5);not null;default:'07:00'"`
	CheckInEndTime            string  `gorm:"type:varchar(5);not null;default:'09:00'"`
	MinimumWorkHours          float64 `gorm:"type:numeric(4,2);not null;default:8"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}

func (c Company) Settings() Settings {
	return Settings{
		LateAttendancePenaltyRate: c.LateAttendancePenaltyRate,
		AttendanceBonusRate:       c.AttendanceBonusRate,
		CheckInStartTime:          c.CheckInStartTime,
		CheckInEndTime:            c.CheckInEndTime,
		MinimumWorkHours:          c.MinimumWorkHours,
	}
}
