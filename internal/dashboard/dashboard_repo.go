package dashboard

import (
	"context"

	"go-hrpay/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountCompanies(ctx context.Context) (total int64, active int64, err error)
	CountUsers(ctx context.Context) (int64, error)
	CountActiveEmployees(ctx context.Context, companyID string) (int64, error)
	// CountPendingLeaves counts PENDING leaves in the company, or only one
	// employee's when employeeID is set.
	CountPendingLeaves(ctx context.Context, companyID, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountCompanies(ctx context.Context) (int64, int64, error) {
	var row struct {
		Total  int64
		Active int64
	}
	err := r.db.WithContext(ctx).
		Table("companies").
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE is_active) AS active").
		Where("deleted_at IS NULL").
		Scan(&row).Error
	return row.Total, row.Active, err
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL").Count(&count).Error
	return count, err
}

func (r *repository) CountActiveEmployees(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID), tenant.ActiveEmployees).
		Count(&count).Error
	return count, err
}

func (r *repository) CountPendingLeaves(ctx context.Context, companyID, employeeID string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Table("leaves").
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", "PENDING")
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	err := q.Count(&count).Error
	return count, err
}
