package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-hrpay/internal/activity"
	departmenterrors "go-hrpay/internal/department/errors"
	"go-hrpay/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DepartmentListKeyPrefix = "departments:all:"

func GetDepartmentListKey(companyID string) string {
	return DepartmentListKeyPrefix + companyID
}

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Identity, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, actor domain.Identity, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, actor domain.Identity, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	activity activity.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, recorder activity.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if recorder == nil {
		recorder = activity.Nop()
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, activity: recorder, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	actor domain.Identity,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	dept := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   uuid.MustParse(actor.CompanyID),
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		s.logger.Warn("create department failed", zap.String("name", req.Name), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, actor.CompanyID)
	s.activity.Record(ctx, activity.NewEntry(actor, activity.ActionCreate, "department", dept.ID.String(),
		fmt.Sprintf("Department %s created", dept.Name)))

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]DepartmentResponse, error) {
	cacheKey := GetDepartmentListKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		depts, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(depts)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, 1*time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	actor domain.Identity,
	id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = req.Name
	dept.Description = req.Description

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidate(ctx, actor.CompanyID)
	s.activity.Record(ctx, activity.NewEntry(actor, activity.ActionUpdate, "department", id,
		fmt.Sprintf("Department %s updated", dept.Name)))

	return mapToResponse(*dept), nil
}

// Delete refuses departments that still have active employees.
func (s *service) Delete(
	ctx context.Context,
	actor domain.Identity,
	id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inUse, err := qtx.CountActiveEmployees(ctx, actor.CompanyID, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, actor.CompanyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, actor.CompanyID)
	s.activity.Record(ctx, activity.NewEntry(actor, activity.ActionDelete, "department", id, "Department deleted"))
	return nil
}

func (s *service) invalidate(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetDepartmentListKey(companyID)).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache", zap.String("company_id", companyID), zap.Error(err))
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Description: dept.Description,
		CompanyID:   dept.CompanyID.String(),
		CreatedAt:   dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
