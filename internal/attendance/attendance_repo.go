package attendance

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

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	// InsertIfAbsent reports false when a row for (employee, date) already
	// exists. The check is the unique index, not a prior read.
	InsertIfAbsent(ctx context.Context, a *Attendance) (bool, error)
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	CountByStatus(ctx context.Context, companyID, employeeID string, from, to time.Time) (map[Status]int64, error)

	ListActiveEmployeeIDs(ctx context.Context, companyID string) ([]string, error)
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) InsertIfAbsent(ctx context.Context, a *Attendance) (bool, error) {
	res := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "attendance_date"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Attendance{}).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	q := r.conn(ctx)
	if r.tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, companyID string, filter ListFilter) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.From != "" {
		q = q.Where("attendance_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("attendance_date <= ?", filter.To)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("attendance_date DESC, check_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Omit("Employee").Save(a).Error
}

func (r *repository) CountByStatus(ctx context.Context, companyID, employeeID string, from, to time.Time) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Total  int64
	}
	q := r.conn(ctx).Model(&Attendance{}).
		Select("status, COUNT(*) AS total").
		Scopes(tenant.Scope(companyID)).
		Where("attendance_date BETWEEN ? AND ?", from.Format(dateLayout), to.Format(dateLayout))
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[Status]int64, len(Statuses))
	for _, s := range Statuses {
		out[s] = 0
	}
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

func (r *repository) ListActiveEmployeeIDs(ctx context.Context, companyID string) ([]string, error) {
	var ids []string
	err := r.conn(ctx).
		Table("employees").
		Scopes(tenant.Scope(companyID), tenant.ActiveEmployees).
		Order("employee_number ASC").
		Pluck("id::text", &ids).Error
	return ids, err
}

func (r *repository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	day := date.Format(dateLayout)
	err := r.conn(ctx).
		Table("leaves").
		Where("employee_id = ?", employeeID).
		Where("status = ?", "APPROVED").
		Where("start_date <= ? AND end_date >= ?", day, day).
		Count(&count).Error
	return count > 0, err
}
