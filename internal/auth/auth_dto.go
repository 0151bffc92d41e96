package auth

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Address  string `json:"address" binding:"required"`
	DOB      string `json:"dob" binding:"required,datetime=2006-01-02"`
	Gender   string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	Phone    string `json:"phone" binding:"required,min=8,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	HomePath     string `json:"home_path"`
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
