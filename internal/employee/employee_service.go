package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go-hrpay/internal/activity"
	"go-hrpay/internal/domain"
	employeeerrors "go-hrpay/internal/employee/errors"
	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/contextutil"
	"go-hrpay/internal/shared/counter"
	"go-hrpay/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	dateLayout               = "2006-01-02"
	photoBucket              = "employee"
)

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Identity, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string, includeInactive bool) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOption, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	GetMe(ctx context.Context, actor domain.Identity) (EmployeeResponse, error)
	Update(ctx context.Context, actor domain.Identity, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, actor domain.Identity, id string) error
	UpdatePhoto(ctx context.Context, actor domain.Identity, id string, file io.Reader, ext string) (EmployeeResponse, error)
	SetPhotoURL(ctx context.Context, id, url string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	counter  counter.Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	storage  storage.Storage
	activity activity.Recorder
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	rdb *redis.Client,
	store storage.Storage,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if recorder == nil {
		recorder = activity.Nop()
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		storage:  store,
		activity: recorder,
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actor domain.Identity,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	companyID := actor.CompanyID
	s.logger.Debug("hire employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("user_id", req.UserID),
	)

	joinDate, err := time.Parse(dateLayout, req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
	}

	role := domain.RoleEmployee
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil || !parsed.IsTenantScoped() {
			return EmployeeResponse{}, apperror.InvalidField("role")
		}
		role = parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hire employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	user, err := qtx.FindUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrUserNotFound
		}
		s.logger.Error("hire employee find user failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if user.CompanyID != nil {
		s.logger.Warn("hire employee user already employed", zap.String("user_id", req.UserID))
		return EmployeeResponse{}, employeeerrors.ErrUserAlreadyEmployed
	}
	if !user.IsActive {
		return EmployeeResponse{}, employeeerrors.ErrUserInactive
	}

	var departmentID *uuid.UUID
	if req.DepartmentID != "" {
		if err := s.checkDepartment(ctx, qtx, companyID, req.DepartmentID); err != nil {
			return EmployeeResponse{}, err
		}
		departmentID = uuidPtr(req.DepartmentID)
	}

	nextVal, err := s.counter.WithTx(tx).NextValue(ctx, companyID, counter.EmployeeNumber)
	if err != nil {
		s.logger.Error("hire employee generate number failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		UserID:         user.ID,
		DepartmentID:   departmentID,
		EmployeeNumber: fmt.Sprintf("EMP-%06d", nextVal),
		FullName:       user.Name,
		Email:          user.Email,
		Position:       req.Position,
		Role:           role.String(),
		BaseSalary:     req.BaseSalary,
		JoinDate:       joinDate,
		IsActive:       true,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		s.logger.Error("hire employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := qtx.AttachUser(ctx, user.ID.String(), companyID, emp.ID.String(), emp.Role); err != nil {
		s.logger.Error("hire employee attach user failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	s.activity.Record(ctx, activity.NewEntry(actor, activity.ActionCreate, "employee", emp.ID.String(),
		fmt.Sprintf("%s hired as %s", emp.FullName, emp.EmployeeNumber)))

	s.logger.Info("hire employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID.String()),
		zap.String("employee_number", emp.EmployeeNumber),
	)

	return mapToResponse(emp), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, includeInactive bool) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAllByCompany(ctx, companyID, includeInactive)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]EmployeeResponse, len(emps))
	for i := range emps {
		out[i] = mapToResponse(&emps[i])
	}
	return out, nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOption, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindActiveByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(emps))
		for i, e := range emps {
			resp[i] = EmployeeOption{ID: e.ID.String(), FullName: e.FullName}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(emp), nil
}

func (s *service) GetMe(ctx context.Context, actor domain.Identity) (EmployeeResponse, error) {
	if actor.EmployeeID == "" {
		return EmployeeResponse{}, employeeerrors.ErrNoEmployeeProfile
	}
	return s.GetByID(ctx, actor.CompanyID, actor.EmployeeID)
}

func (s *service) Update(
	ctx context.Context,
	actor domain.Identity,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByIDForUpdate(ctx, actor.CompanyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	changes := map[string]any{}

	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			emp.DepartmentID = nil
		} else {
			if err := s.checkDepartment(ctx, qtx, actor.CompanyID, *req.DepartmentID); err != nil {
				return EmployeeResponse{}, err
			}
			emp.DepartmentID = uuidPtr(*req.DepartmentID)
		}
		changes["department_id"] = *req.DepartmentID
	}
	if req.Position != nil {
		emp.Position = *req.Position
		changes["position"] = emp.Position
	}
	if req.BaseSalary != nil {
		if *req.BaseSalary < 0 {
			return EmployeeResponse{}, apperror.InvalidField("base_salary")
		}
		changes["base_salary"] = map[string]int64{"from": emp.BaseSalary, "to": *req.BaseSalary}
		emp.BaseSalary = *req.BaseSalary
	}
	if req.JoinDate != nil {
		joinDate, err := time.Parse(dateLayout, *req.JoinDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
		}
		emp.JoinDate = joinDate
		changes["join_date"] = *req.JoinDate
	}

	roleChanged := false
	if req.Role != nil && *req.Role != emp.Role {
		role, err := domain.ParseRole(*req.Role)
		if err != nil || !role.IsTenantScoped() {
			return EmployeeResponse{}, apperror.InvalidField("role")
		}
		changes["role"] = map[string]string{"from": emp.Role, "to": role.String()}
		emp.Role = role.String()
		roleChanged = true
	}

	if err := qtx.Update(ctx, emp); err != nil {
		s.logger.Error("update employee failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if roleChanged {
		if err := qtx.SetUserRole(ctx, emp.UserID.String(), emp.Role); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, actor.CompanyID)

	entry := activity.NewEntry(actor, activity.ActionUpdate, "employee", id,
		fmt.Sprintf("Employee %s updated", emp.EmployeeNumber))
	entry.Metadata = changes
	s.activity.Record(ctx, entry)

	return mapToResponse(emp), nil
}

// Deactivate is a soft removal: the row stays for payroll history and the
// linked user can no longer log in.
func (s *service) Deactivate(ctx context.Context, actor domain.Identity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if id == actor.EmployeeID {
		return employeeerrors.ErrCannotDeactivateSelf
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByIDForUpdate(ctx, actor.CompanyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !emp.IsActive {
		return employeeerrors.ErrAlreadyInactive
	}

	emp.IsActive = false
	if err := qtx.Update(ctx, emp); err != nil {
		s.logger.Error("deactivate employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := qtx.SetUserActive(ctx, emp.UserID.String(), false); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptions(ctx, actor.CompanyID)
	s.activity.Record(ctx, activity.NewEntry(actor, activity.ActionDelete, "employee", id,
		fmt.Sprintf("Employee %s deactivated", emp.EmployeeNumber)))

	s.logger.Info("employee deactivated", zap.String("employee_id", id))
	return nil
}

func (s *service) UpdatePhoto(
	ctx context.Context,
	actor domain.Identity,
	id string,
	file io.Reader,
	ext string,
) (EmployeeResponse, error) {
	if actor.Role != domain.RoleCompanyAdmin && actor.EmployeeID != id {
		return EmployeeResponse{}, apperror.ErrForbidden
	}

	emp, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	var url string
	if emp.PhotoURL == nil {
		url, err = s.storage.Upload(ctx, file, ext, photoBucket)
	} else {
		url, err = s.storage.Update(ctx, *emp.PhotoURL, file, ext, photoBucket)
	}
	if err != nil {
		s.logger.Error("store photo failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := s.repo.SetPhotoURL(ctx, id, url); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	emp.PhotoURL = &url

	return mapToResponse(emp), nil
}

func (s *service) SetPhotoURL(ctx context.Context, id, url string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	return mapRepositoryError(s.repo.SetPhotoURL(ctx, id, url))
}

func (s *service) checkDepartment(ctx context.Context, repo Repository, companyID, departmentID string) error {
	if _, err := uuid.Parse(departmentID); err != nil {
		return employeeerrors.ErrDepartmentNotFound
	}
	ok, err := repo.DepartmentExists(ctx, companyID, departmentID)
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrDepartmentNotFound
	}
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(e *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		UserID:         e.UserID.String(),
		CompanyID:      e.CompanyID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		Email:          e.Email,
		Position:       e.Position,
		Role:           e.Role,
		BaseSalary:     e.BaseSalary,
		JoinDate:       e.JoinDate.Format(dateLayout),
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
	}
	if e.DepartmentID != nil {
		resp.DepartmentID = e.DepartmentID.String()
	}
	if e.PhotoURL != nil {
		resp.PhotoURL = *e.PhotoURL
	}
	return resp
}
