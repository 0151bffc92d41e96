package employee

import (
	"context"
	"database/sql"

	"go-hrpay/internal/shared/connection"
	"go-hrpay/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAllByCompany(ctx context.Context, companyID string, includeInactive bool) ([]Employee, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindByIDForUpdate(ctx context.Context, companyID, id string) (*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	SetPhotoURL(ctx context.Context, id, url string) error

	FindUser(ctx context.Context, userID string) (*UserAccount, error)
	AttachUser(ctx context.Context, userID, companyID, employeeID, role string) error
	SetUserRole(ctx context.Context, userID, role string) error
	SetUserActive(ctx context.Context, userID string, active bool) error
	DepartmentExists(ctx context.Context, companyID, departmentID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.WithSQLTx(r.db, r.tx).WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.conn(ctx).Create(emp).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, includeInactive bool) ([]Employee, error) {
	var emps []Employee
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("employee_number ASC").Find(&emps).Error
	return emps, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var emps []Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID), tenant.ActiveEmployees).
		Order("employee_number ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, companyID, id string) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.conn(ctx).First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.conn(ctx).Save(emp).Error
}

func (r *repository) SetPhotoURL(ctx context.Context, id, url string) error {
	res := r.conn(ctx).Model(&Employee{}).Where("id = ?", id).Update("photo_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindUser(ctx context.Context, userID string) (*UserAccount, error) {
	var u UserAccount
	err := r.conn(ctx).
		Table("users").
		Select("id, name, email, company_id, is_active").
		Where("id = ? AND deleted_at IS NULL", userID).
		Take(&u).Error
	return &u, err
}

func (r *repository) AttachUser(ctx context.Context, userID, companyID, employeeID, role string) error {
	return r.conn(ctx).
		Table("users").
		Where("id = ?", userID).
		Updates(map[string]any{
			"company_id":  companyID,
			"employee_id": employeeID,
			"role":        role,
		}).Error
}

func (r *repository) SetUserRole(ctx context.Context, userID, role string) error {
	return r.conn(ctx).Table("users").Where("id = ?", userID).Update("role", role).Error
}

func (r *repository) SetUserActive(ctx context.Context, userID string, active bool) error {
	return r.conn(ctx).Table("users").Where("id = ?", userID).Update("is_active", active).Error
}

func (r *repository) DepartmentExists(ctx context.Context, companyID, departmentID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("departments").
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND deleted_at IS NULL", departmentID).
		Count(&count).Error
	return count > 0, err
}
