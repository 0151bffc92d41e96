package salary

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrpay/internal/activity"
	"go-hrpay/internal/attendance"
	"go-hrpay/internal/company"
	"go-hrpay/internal/domain"
	"go-hrpay/internal/events"
	"go-hrpay/internal/messaging/kafka"
	salaryerrors "go-hrpay/internal/salary/errors"
	"go-hrpay/internal/shared/apperror"
	"go-hrpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsProvider is satisfied by company.Service.
type SettingsProvider interface {
	GetSettings(ctx context.Context, companyID string) (company.Settings, error)
}

// AttendanceSummarizer is satisfied by attendance.Service.
type AttendanceSummarizer interface {
	Summary(ctx context.Context, companyID, employeeID string, from, to time.Time) (map[attendance.Status]int64, error)
}

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Identity, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context, actor domain.Identity, filter ListFilter) ([]SalaryResponse, error)
	GetByID(ctx context.Context, actor domain.Identity, id string) (SalaryResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Identity, id string, req UpdateStatusRequest) (SalaryResponse, error)
	Preview(ctx context.Context, actor domain.Identity, employeeID, month, year string) (PreviewResponse, error)
	Export(ctx context.Context, actor domain.Identity, month, year string) (*bytes.Buffer, error)
	GetPayslipURL(ctx context.Context, actor domain.Identity, id string) (PayslipResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	settings   SettingsProvider
	attendance AttendanceSummarizer
	outbox     kafka.OutboxRepository
	activity   activity.Recorder
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	settings SettingsProvider,
	attendance AttendanceSummarizer,
	outbox kafka.OutboxRepository,
	recorder activity.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	if recorder == nil {
		recorder = activity.Nop()
	}
	return &service{
		db:         db,
		repo:       repo,
		settings:   settings,
		attendance: attendance,
		outbox:     outbox,
		activity:   recorder,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor domain.Identity, req CreateSalaryRequest) (SalaryResponse, error) {
	s.logger.Debug("create salary requested",
		zap.String("company_id", actor.CompanyID),
		zap.String("actor_id", actor.UserID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.String("year", req.Year),
	)

	employeeID, err := validateCreateRequest(req)
	if err != nil {
		s.logger.Warn("create salary validation failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	createdBy, err := uuid.Parse(actor.UserID)
	if err != nil {
		return SalaryResponse{}, apperror.ErrUnauthorized
	}
	companyID, err := uuid.Parse(actor.CompanyID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrCompanyRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	employee, err := qtx.FindEmployee(ctx, actor.CompanyID, employeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryResponse{}, salaryerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create salary employee lookup failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	exists, err := qtx.PeriodExists(ctx, employeeID.String(), req.Month, req.Year)
	if err != nil {
		s.logger.Error("create salary period check failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	if exists {
		s.logger.Warn("create salary period taken",
			zap.String("employee_id", employeeID.String()),
			zap.String("month", req.Month),
			zap.String("year", req.Year),
		)
		return SalaryResponse{}, salaryerrors.ErrSalaryExists
	}

	total, err := TotalOf(employee.BaseSalary, req.Bonus, req.AttendanceBonus, req.Deduction)
	if err != nil {
		s.logger.Warn("create salary total out of range",
			zap.String("employee_id", employeeID.String()),
			zap.Int64("base_salary", employee.BaseSalary),
		)
		return SalaryResponse{}, err
	}

	sal := &Salary{
		ID:              uuid.New(),
		CompanyID:       companyID,
		EmployeeID:      employeeID,
		Month:           req.Month,
		Year:            req.Year,
		BaseSalary:      employee.BaseSalary,
		Bonus:           req.Bonus,
		AttendanceBonus: req.AttendanceBonus,
		Deduction:       req.Deduction,
		Total:           total,
		Status:          StatusUnpaid,
		CreatedBy:       createdBy,
	}

	if err := qtx.Create(ctx, sal); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, salaryerrors.ErrSalaryExists) {
			s.logger.Warn("create salary lost period race", zap.String("employee_id", employeeID.String()))
		} else {
			s.logger.Error("create salary persist failed", zap.Error(err))
		}
		return SalaryResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary commit failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("create salary success",
		zap.String("salary_id", sal.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Int64("total", sal.Total),
	)

	entry := activity.NewEntry(actor, activity.ActionCreate, "salary", sal.ID.String(),
		fmt.Sprintf("Salary %s/%s created for %s", sal.Month, sal.Year, employee.FullName))
	entry.Metadata = map[string]any{
		"employee_id": employeeID.String(),
		"total":       sal.Total,
	}
	s.activity.Record(ctx, entry)

	sal.Employee = employee
	return mapToResponse(*sal), nil
}

func (s *service) GetAll(ctx context.Context, actor domain.Identity, filter ListFilter) ([]SalaryResponse, error) {
	if actor.Role == domain.RoleEmployee {
		filter.EmployeeID = actor.EmployeeID
	}
	salaries, err := s.repo.FindAll(ctx, actor.CompanyID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Identity, id string) (SalaryResponse, error) {
	sal, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return SalaryResponse{}, err
	}
	return mapToResponse(*sal), nil
}

func (s *service) findVisible(ctx context.Context, actor domain.Identity, id string) (*Salary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, salaryerrors.ErrInvalidSalaryID
	}
	sal, err := s.repo.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if actor.Role == domain.RoleEmployee && sal.EmployeeID.String() != actor.EmployeeID {
		return nil, salaryerrors.ErrSalaryNotFound
	}
	return sal, nil
}

func (s *service) UpdateStatus(ctx context.Context, actor domain.Identity, id string, req UpdateStatusRequest) (SalaryResponse, error) {
	target := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !target.Valid() {
		return SalaryResponse{}, salaryerrors.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidSalaryID
	}

	s.logger.Debug("update salary status requested",
		zap.String("salary_id", id),
		zap.String("actor_id", actor.UserID),
		zap.String("target_status", string(target)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary status begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sal, err := qtx.FindByIDAndCompany(ctx, actor.CompanyID, id)
	if err != nil {
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if sal.Status == target {
		return mapToResponse(*sal), nil
	}
	if sal.Status == StatusPaid {
		s.logger.Warn("update salary status rejected",
			zap.String("salary_id", id),
			zap.String("from_status", string(sal.Status)),
			zap.String("to_status", string(target)),
		)
		return SalaryResponse{}, salaryerrors.ErrAlreadyPaid
	}

	now := s.now().UTC()
	sal.Status = StatusPaid
	sal.PaidAt = &now

	if err := qtx.Update(ctx, sal); err != nil {
		s.logger.Error("update salary status persist failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, err
	}

	event := events.SalaryPaidEvent{
		EventType:  events.SalaryPaidEventType,
		RequestID:  contextutil.GetRequestID(ctx),
		SalaryID:   sal.ID.String(),
		EmployeeID: sal.EmployeeID.String(),
		CompanyID:  sal.CompanyID.String(),
		Month:      sal.Month,
		Year:       sal.Year,
		Total:      sal.Total,
		PaidAt:     now,
		OccurredAt: now,
	}
	if err := kafka.Enqueue(ctx, s.outbox, tx, event.RequestID, "salary", event.SalaryID,
		events.SalaryPaidEventType, events.SalaryPaidTopic, event); err != nil {
		s.logger.Error("enqueue salary paid event failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary status commit failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, err
	}
	s.logger.Info("salary marked paid", zap.String("salary_id", id))

	entry := activity.NewEntry(actor, activity.ActionUpdate, "salary", sal.ID.String(),
		fmt.Sprintf("Salary %s/%s marked as PAID", sal.Month, sal.Year))
	entry.Metadata = map[string]any{
		"from_status": string(StatusUnpaid),
		"to_status":   string(StatusPaid),
		"employee_id": sal.EmployeeID.String(),
	}
	s.activity.Record(ctx, entry)

	return mapToResponse(*sal), nil
}

func (s *service) Preview(ctx context.Context, actor domain.Identity, employeeID, month, year string) (PreviewResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return PreviewResponse{}, salaryerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(month, year); err != nil {
		return PreviewResponse{}, err
	}

	employee, err := s.repo.FindEmployee(ctx, actor.CompanyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PreviewResponse{}, salaryerrors.ErrEmployeeNotFound
		}
		return PreviewResponse{}, err
	}

	settings, err := s.settings.GetSettings(ctx, actor.CompanyID)
	if err != nil {
		return PreviewResponse{}, err
	}

	from, to := periodRange(month, year)
	counts, err := s.attendance.Summary(ctx, actor.CompanyID, employeeID, from, to)
	if err != nil {
		return PreviewResponse{}, err
	}

	adj := SuggestAdjustments(employee.BaseSalary, counts, settings)
	total, err := TotalOf(employee.BaseSalary, 0, adj.AttendanceBonus, adj.Deduction)
	if err != nil {
		return PreviewResponse{}, err
	}
	return PreviewResponse{
		EmployeeID:      employeeID,
		Month:           month,
		Year:            year,
		BaseSalary:      employee.BaseSalary,
		PresentDays:     counts[attendance.StatusPresent],
		LateDays:        counts[attendance.StatusLate],
		AbsentDays:      counts[attendance.StatusAbsent],
		OnLeaveDays:     counts[attendance.StatusOnLeave],
		AttendanceBonus: adj.AttendanceBonus,
		Deduction:       adj.Deduction,
		Total:           total,
	}, nil
}

func (s *service) Export(ctx context.Context, actor domain.Identity, month, year string) (*bytes.Buffer, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	salaries, err := s.repo.FindAll(ctx, actor.CompanyID, ListFilter{Month: month, Year: year})
	if err != nil {
		return nil, err
	}

	buf, err := renderWorkbook(month, year, salaries)
	if err != nil {
		s.logger.Error("render salary export failed", zap.String("company_id", actor.CompanyID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("salary export rendered",
		zap.String("company_id", actor.CompanyID),
		zap.String("period", month+"/"+year),
		zap.Int("rows", len(salaries)),
	)

	entry := activity.NewEntry(actor, activity.ActionSystem, "salary", "",
		fmt.Sprintf("Salary export for %s/%s", month, year))
	entry.Metadata = map[string]any{"rows": len(salaries)}
	s.activity.Record(ctx, entry)

	return buf, nil
}

func (s *service) GetPayslipURL(ctx context.Context, actor domain.Identity, id string) (PayslipResponse, error) {
	sal, err := s.findVisible(ctx, actor, id)
	if err != nil {
		return PayslipResponse{}, err
	}
	if sal.PayslipURL == nil || *sal.PayslipURL == "" {
		return PayslipResponse{}, salaryerrors.ErrPayslipNotReady
	}
	return PayslipResponse{SalaryID: sal.ID.String(), PayslipURL: *sal.PayslipURL}, nil
}

// validateCreateRequest checks every field before anything is written. The
// first failing field wins.
func validateCreateRequest(req CreateSalaryRequest) (uuid.UUID, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, salaryerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return uuid.Nil, err
	}
	if err := validateAmounts(req); err != nil {
		return uuid.Nil, err
	}
	return employeeID, nil
}

func mapToResponse(sal Salary) SalaryResponse {
	resp := SalaryResponse{
		ID:              sal.ID.String(),
		CompanyID:       sal.CompanyID.String(),
		EmployeeID:      sal.EmployeeID.String(),
		Month:           sal.Month,
		Year:            sal.Year,
		BaseSalary:      sal.BaseSalary,
		Bonus:           sal.Bonus,
		AttendanceBonus: sal.AttendanceBonus,
		Deduction:       sal.Deduction,
		Total:           sal.Total,
		Status:          string(sal.Status),
		PayslipURL:      sal.PayslipURL,
		CreatedBy:       sal.CreatedBy.String(),
		CreatedAt:       sal.CreatedAt.Format(time.RFC3339),
	}
	if sal.Employee != nil {
		resp.EmployeeName = sal.Employee.FullName
	}
	if sal.PaidAt != nil {
		v := sal.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}
	return resp
}

func mapToListResponse(salaries []Salary) []SalaryResponse {
	resp := make([]SalaryResponse, len(salaries))
	for i, sal := range salaries {
		resp[i] = mapToResponse(sal)
	}
	return resp
}
