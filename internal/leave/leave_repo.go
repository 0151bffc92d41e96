package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrpay/internal/shared/connection"
	"go-hrpay/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Leave, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error)
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	// SumApprovedDays totals APPROVED leave of one type whose start_date
	// falls in [from, to].
	SumApprovedDays(ctx context.Context, employeeID string, leaveType LeaveType, from, to time.Time) (int, error)

	CreatePolicy(ctx context.Context, p *LeavePolicy) error
	FindPolicyByID(ctx context.Context, id string) (*LeavePolicy, error)
	FindActivePolicy(ctx context.Context, companyID string, leaveType LeaveType) (*LeavePolicy, error)
	PolicyExists(ctx context.Context, companyID string, leaveType LeaveType) (bool, error)
	ListPolicies(ctx context.Context, companyID string) ([]LeavePolicy, error)
	UpdatePolicy(ctx context.Context, p *LeavePolicy) error
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Leave, error) {
	var leaves []Leave
	q := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("start_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	q := r.conn(ctx).Preload("Employee")
	if r.tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: clause.CurrentTable}})
	}
	err := q.
		Scopes(tenant.Scope(companyID)).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.conn(ctx).Omit("Employee").Save(l).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID), tenant.ActiveEmployees).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.conn(ctx).First(&e, "id = ?", employeeID).Error
	return &e, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusCancelled).
		Where("NOT (end_date < ? OR start_date > ?)", startDate.Format(dateLayout), endDate.Format(dateLayout)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) SumApprovedDays(ctx context.Context, employeeID string, leaveType LeaveType, from, to time.Time) (int, error) {
	var total int
	err := r.conn(ctx).
		Model(&Leave{}).
		Select("COALESCE(SUM(total_days), 0)").
		Where("employee_id = ?", employeeID).
		Where("leave_type = ?", leaveType).
		Where("status = ?", StatusApproved).
		Where("start_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout)).
		Scan(&total).Error
	return total, err
}

func (r *repository) CreatePolicy(ctx context.Context, p *LeavePolicy) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindPolicyByID(ctx context.Context, id string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindActivePolicy(ctx context.Context, companyID string, leaveType LeaveType) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("leave_type = ?", leaveType).
		Where("is_active = ?", true).
		First(&p).Error
	return &p, err
}

func (r *repository) PolicyExists(ctx context.Context, companyID string, leaveType LeaveType) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&LeavePolicy{}).
		Scopes(tenant.Scope(companyID)).
		Where("leave_type = ?", leaveType).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListPolicies(ctx context.Context, companyID string) ([]LeavePolicy, error) {
	var policies []LeavePolicy
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("leave_type ASC").
		Find(&policies).Error
	return policies, err
}

func (r *repository) UpdatePolicy(ctx context.Context, p *LeavePolicy) error {
	return r.conn(ctx).Save(p).Error
}
