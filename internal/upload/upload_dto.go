package upload

const (
	TargetCompanyLogo   = "company_logo"
	TargetEmployeePhoto = "employee_photo"
)

// CallbackRequest is posted by the storage backend once an asynchronous
// upload has finished.
type CallbackRequest struct {
	Target string `json:"target" binding:"required,oneof=company_logo employee_photo"`
	ID     string `json:"id" binding:"required,uuid"`
	URL    string `json:"url" binding:"required,max=2048"`
}
