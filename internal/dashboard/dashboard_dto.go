package dashboard

type SuperAdminSummary struct {
	Companies       int64 `json:"companies"`
	ActiveCompanies int64 `json:"active_companies"`
	Users           int64 `json:"users"`
}

type AdminSummary struct {
	Date            string           `json:"date"`
	ActiveEmployees int64            `json:"active_employees"`
	Attendance      map[string]int64 `json:"attendance"`
	PendingLeaves   int64            `json:"pending_leaves"`
}

type UserSummary struct {
	Month         string           `json:"month"`
	Attendance    map[string]int64 `json:"attendance"`
	PendingLeaves int64            `json:"pending_leaves"`
}
