package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ActiveEmployees keeps employees that are neither deactivated nor soft deleted.
func ActiveEmployees(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Where("deleted_at IS NULL")
}
