package events

import "time"

const (
	SalaryPaidTopic     = "hr.salary.paid.v1"
	SalaryPaidEventType = "salary_paid"
)

// SalaryPaidEvent drives payslip rendering and delivery.
type SalaryPaidEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	SalaryID   string    `json:"salary_id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Month      string    `json:"month"`
	Year       string    `json:"year"`
	Total      int64     `json:"total"`
	PaidAt     time.Time `json:"paid_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
