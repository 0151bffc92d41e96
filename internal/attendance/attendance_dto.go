package attendance

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes"`
}

type EvaluateRequest struct {
	// CompanyID is only honored for platform admins.
	CompanyID string `json:"company_id" binding:"omitempty,uuid"`
}

type ListFilter struct {
	EmployeeID string
	From       string
	To         string
	Status     string
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	CheckIn        *string  `json:"check_in,omitempty"`
	CheckOut       *string  `json:"check_out,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         Status   `json:"status"`
	Source         string   `json:"source"`
	Notes          *string  `json:"notes,omitempty"`
}

type ClockOutResponse struct {
	AttendanceResponse
	WorkedHours      float64 `json:"worked_hours"`
	MinimumWorkHours float64 `json:"minimum_work_hours"`
	MetMinimum       bool    `json:"met_minimum"`
}
