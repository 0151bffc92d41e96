package auth

import (
	"context"
	"database/sql"
	"errors"

	"go-hrpay/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, user *User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindDepartmentID returns "" when the employee has no department.
	FindDepartmentID(ctx context.Context, employeeID uuid.UUID) (string, error)
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

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.conn(ctx).Create(user).Error
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count > 0, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.conn(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	return &user, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.conn(ctx).First(&user, "id = ?", id).Error
	return &user, err
}

func (r *repository) FindDepartmentID(ctx context.Context, employeeID uuid.UUID) (string, error) {
	var departmentID sql.NullString
	err := r.conn(ctx).
		Table("employees").
		Select("department_id::text").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Row().Scan(&departmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return departmentID.String, nil
}
