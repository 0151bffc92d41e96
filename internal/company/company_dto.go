package company

import "time"

// Settings is the read model other modules consume.
type Settings struct {
	LateAttendancePenaltyRate float64 `json:"late_attendance_penalty_rate"`
	AttendanceBonusRate       float64 `json:"attendance_bonus_rate"`
	CheckInStartTime          string  `json:"check_in_start_time"`
	CheckInEndTime            string  `json:"check_in_end_time"`
	MinimumWorkHours          float64 `json:"minimum_work_hours"`
}

type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required,max=150"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address"`
}

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	LogoURL   string    `json:"logo_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"created_at"`
}
