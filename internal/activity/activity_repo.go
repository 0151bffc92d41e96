package activity

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Activity) error
	// FindRecent lists newest first. An empty companyID lists every tenant.
	FindRecent(ctx context.Context, companyID string, limit int) ([]Activity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindRecent(ctx context.Context, companyID string, limit int) ([]Activity, error) {
	var rows []Activity
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	err := q.Find(&rows).Error
	return rows, err
}
