package company

import (
	"context"
	"database/sql"

	"go-hrpay/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, company *Company) error
	FindAll(ctx context.Context) ([]Company, error)
	FindByID(ctx context.Context, id string) (*Company, error)
	// FindByIDForUpdate row-locks the company until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*Company, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	ListActiveIDs(ctx context.Context) ([]string, error)
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

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.conn(ctx).Create(company).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.conn(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Company, error) {
	var company Company
	err := r.conn(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Company, error) {
	var company Company
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&Company{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res := r.conn(ctx).Model(&Company{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.conn(ctx).Model(&Company{}).
		Where("is_active = ?", true).
		Pluck("id::text", &ids).Error
	return ids, err
}
