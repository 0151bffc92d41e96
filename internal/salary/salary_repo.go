package salary

import (
	"context"
	"database/sql"

	"go-hrpay/internal/shared/connection"
	"go-hrpay/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	FindEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error)
	PeriodExists(ctx context.Context, employeeID, month, year string) (bool, error)
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Salary, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Salary, error)
	FindByID(ctx context.Context, id string) (*Salary, error)
	Update(ctx context.Context, s *Salary) error
	SetPayslipURL(ctx context.Context, id, url string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.WithSQLTx(r.db, r.tx).WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Omit("Employee").Create(s).Error
}

// FindEmployee resolves an active employee inside the company, including the
// current base salary.
func (r *repository) FindEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID), tenant.ActiveEmployees).
		First(&e, "id = ?", employeeID).Error
	return &e, err
}

func (r *repository) PeriodExists(ctx context.Context, employeeID, month, year string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Salary{}).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Salary, error) {
	var salaries []Salary
	q := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Month != "" {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.Year != "" {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("year DESC, month DESC, created_at DESC").Find(&salaries).Error
	return salaries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Salary, error) {
	var s Salary
	q := r.conn(ctx).Preload("Employee")
	if r.tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: clause.CurrentTable}})
	}
	err := q.
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Salary, error) {
	var s Salary
	err := r.conn(ctx).Preload("Employee").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Omit("Employee").Save(s).Error
}

func (r *repository) SetPayslipURL(ctx context.Context, id, url string) error {
	res := r.conn(ctx).
		Model(&Salary{}).
		Where("id = ?", id).
		Update("payslip_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
