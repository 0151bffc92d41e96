package domain

// Identity is the decoded credential attached to a request.
type Identity struct {
	UserID       string
	Name         string
	Email        string
	Role         Role
	CompanyID    string
	DepartmentID string
	EmployeeID   string
}

func (i Identity) IsPlatformAdmin() bool {
	return i.Role == RolePlatformAdmin
}

// CanManageCompany is true for a platform admin, or for the admin of that
// company.
func (i Identity) CanManageCompany(companyID string) bool {
	switch i.Role {
	case RolePlatformAdmin:
		return true
	case RoleCompanyAdmin:
		return i.CompanyID != "" && i.CompanyID == companyID
	case RoleEmployee:
		return false
	}
	return false
}
